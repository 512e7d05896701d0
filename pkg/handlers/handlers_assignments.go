package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// AssignRoles runs the assignment engine for a meeting, replacing any
// previous result
func (h *Handler) AssignRoles(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := h.Engine.AssignRoles(c.Request.Context(), teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAssignments returns the stored assignments of a meeting
func (h *Handler) GetAssignments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetMeeting(ctx, teamID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	assignments, err := h.Store.MeetingAssignments(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// ExportAssignmentsCSV returns the stored assignments of a meeting as CSV
func (h *Handler) ExportAssignmentsCSV(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	m, err := h.Store.GetMeeting(ctx, teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	assignments, err := h.Store.MeetingAssignments(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)
	_ = writer.Write([]string{"meeting_id", "meeting_title", "scheduled_time", "participant_id", "participant_name", "role", "fitness_score"})
	for _, a := range assignments {
		_ = writer.Write([]string{
			strconv.FormatUint(uint64(m.ID), 10),
			m.Title,
			m.ScheduledTime.Format(time.RFC3339),
			strconv.FormatUint(uint64(a.ParticipantID), 10),
			a.ParticipantName,
			a.Role,
			fmt.Sprintf("%.2f", a.FitnessScore),
		})
	}
	writer.Flush()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=meeting-%d-roles.csv", m.ID))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out.String()))
}
