package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/scoring"
	"github.com/G00gleKid/demo-code/pkg/stats"
	"github.com/gin-gonic/gin"
)

// ListParticipants returns every participant of the caller's team
func (h *Handler) ListParticipants(c *gin.Context) {
	participants, err := h.Store.ListParticipants(c.Request.Context(), teamID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// CreateParticipant adds a participant to the caller's team
func (h *Handler) CreateParticipant(c *gin.Context) {
	var input models.ParticipantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := models.Participant{
		Name:                  strings.TrimSpace(input.Name),
		Email:                 strings.ToLower(input.Email),
		Chronotype:            input.Chronotype,
		PeakHoursStart:        input.PeakHoursStart,
		PeakHoursEnd:          input.PeakHoursEnd,
		EmotionalIntelligence: input.EmotionalIntelligence,
		SocialIntelligence:    input.SocialIntelligence,
	}
	if err := h.Store.CreateParticipant(c.Request.Context(), teamID(c), &p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetParticipant returns one participant
func (h *Handler) GetParticipant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.Store.GetParticipant(c.Request.Context(), teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateParticipant applies the fields present in the body
func (h *Handler) UpdateParticipant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.ParticipantUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	p, err := h.Store.GetParticipant(ctx, teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		p.Email = strings.ToLower(*input.Email)
	}
	if input.Chronotype != nil {
		p.Chronotype = *input.Chronotype
	}
	if input.PeakHoursStart != nil {
		p.PeakHoursStart = *input.PeakHoursStart
	}
	if input.PeakHoursEnd != nil {
		p.PeakHoursEnd = *input.PeakHoursEnd
	}
	if input.EmotionalIntelligence != nil {
		p.EmotionalIntelligence = *input.EmotionalIntelligence
	}
	if input.SocialIntelligence != nil {
		p.SocialIntelligence = *input.SocialIntelligence
	}

	if err := h.Store.SaveParticipant(ctx, p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteParticipant removes a participant with their history
func (h *Handler) DeleteParticipant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteParticipant(c.Request.Context(), teamID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ParticipantHistory returns the participant's most recent role records
func (h *Handler) ParticipantHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", database.DefaultHistoryLimit, 1, 100)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetParticipant(ctx, teamID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	history, err := h.Store.ParticipantHistory(ctx, id, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// ParticipantStatistics reports role distribution over the last days
func (h *Handler) ParticipantStatistics(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	days, ok := queryInt(c, "days", 7, 1, 365)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	p, err := h.Store.GetParticipant(ctx, teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	now := h.now()
	start, end := stats.Window(now, days)
	entries, err := h.Store.AssignmentsBetween(ctx, id, start, end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Statistics(*p, entries, days, now))
}

// ImportParticipantsCSV creates participants from an uploaded CSV file with
// the columns name, email, chronotype, peak_hours_start, peak_hours_end,
// emotional_intelligence and social_intelligence. Bad rows are reported and
// skipped.
func (h *Handler) ImportParticipantsCSV(c *gin.Context) {
	file, _ := c.FormFile("participants_file")
	if file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participants_file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open participants file"})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read participants header"})
		return
	}
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"name", "email", "chronotype", "peak_hours_start", "peak_hours_end"} {
		if _, ok := cols[required]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing column " + required})
			return
		}
	}

	ctx := c.Request.Context()
	created := []models.Participant{}
	rowErrors := []gin.H{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrors = append(rowErrors, gin.H{"line": line, "error": err.Error()})
			continue
		}

		p, err := participantFromRecord(record, cols)
		if err == nil {
			err = scoring.ValidateParticipant(p)
		}
		if err == nil {
			err = h.Store.CreateParticipant(ctx, teamID(c), &p)
		}
		if err != nil {
			if statusFor(err) >= http.StatusInternalServerError {
				h.fail(c, err)
				return
			}
			rowErrors = append(rowErrors, gin.H{"line": line, "error": err.Error()})
			continue
		}
		created = append(created, p)
	}

	c.JSON(http.StatusOK, gin.H{"created": created, "errors": rowErrors})
}

func participantFromRecord(record []string, cols map[string]int) (models.Participant, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	number := func(name string) (int, error) {
		raw := field(name)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.New(name + " must be an integer")
		}
		return n, nil
	}

	p := models.Participant{
		Name:       field("name"),
		Email:      strings.ToLower(field("email")),
		Chronotype: strings.ToLower(field("chronotype")),
	}
	if p.Name == "" || p.Email == "" {
		return p, errors.New("name and email are required")
	}

	var err error
	if p.PeakHoursStart, err = number("peak_hours_start"); err != nil {
		return p, err
	}
	if p.PeakHoursEnd, err = number("peak_hours_end"); err != nil {
		return p, err
	}
	if p.EmotionalIntelligence, err = number("emotional_intelligence"); err != nil {
		return p, err
	}
	if p.SocialIntelligence, err = number("social_intelligence"); err != nil {
		return p, err
	}
	return p, nil
}
