package handlers

import (
	"net/http"
	"strings"

	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/gin-gonic/gin"
)

// ListMeetings returns the team's meetings, latest first
func (h *Handler) ListMeetings(c *gin.Context) {
	meetings, err := h.Store.ListMeetings(c.Request.Context(), teamID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

// CreateMeeting schedules a meeting with an optional roster
func (h *Handler) CreateMeeting(c *gin.Context) {
	var input models.MeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ScheduledTime.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_time is required"})
		return
	}

	m := models.Meeting{
		Title:         strings.TrimSpace(input.Title),
		MeetingType:   input.MeetingType,
		ScheduledTime: input.ScheduledTime,
	}
	if err := h.Store.CreateMeeting(c.Request.Context(), teamID(c), &m, input.ParticipantIDs); err != nil {
		h.fail(c, err)
		return
	}
	if m.Participants == nil {
		m.Participants = []models.Participant{}
	}
	c.JSON(http.StatusCreated, m)
}

// GetMeeting returns one meeting with its roster
func (h *Handler) GetMeeting(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	m, err := h.Store.GetMeeting(c.Request.Context(), teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMeeting applies the fields present in the body
func (h *Handler) UpdateMeeting(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.MeetingUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	m, err := h.Store.GetMeeting(ctx, teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if input.Title != nil {
		m.Title = strings.TrimSpace(*input.Title)
	}
	if input.MeetingType != nil {
		m.MeetingType = *input.MeetingType
	}
	if input.ScheduledTime != nil && !input.ScheduledTime.IsZero() {
		m.ScheduledTime = *input.ScheduledTime
	}

	if err := h.Store.SaveMeeting(ctx, m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMeeting removes a meeting with its roster and assignments
func (h *Handler) DeleteMeeting(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteMeeting(c.Request.Context(), teamID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMeetingParticipants appends team members to the roster
func (h *Handler) AddMeetingParticipants(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ParticipantIDs []uint `json:"participant_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	added, err := h.Store.AddParticipants(ctx, teamID(c), id, req.ParticipantIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	m, err := h.Store.GetMeeting(ctx, teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "meeting": m})
}

// RemoveMeetingParticipant takes one participant off the roster
func (h *Handler) RemoveMeetingParticipant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pid, ok := paramID(c, "pid")
	if !ok {
		return
	}
	if err := h.Store.RemoveParticipant(c.Request.Context(), teamID(c), id, pid); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
