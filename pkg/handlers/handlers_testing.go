package handlers

import (
	"fmt"
	"net/http"

	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/survey"
	"github.com/gin-gonic/gin"
)

type scoreKind int

const (
	emotionalScore scoreKind = iota
	socialScore
)

func (k scoreKind) field(p *models.Participant) *int {
	if k == emotionalScore {
		return &p.EmotionalIntelligence
	}
	return &p.SocialIntelligence
}

func (k scoreKind) String() string {
	if k == emotionalScore {
		return "emotional_intelligence"
	}
	return "social_intelligence"
}

// view is the questionnaire shape of p for this score
func (k scoreKind) view(p models.Participant) any {
	if k == emotionalScore {
		return models.ParticipantEI{ID: p.ID, Name: p.Name, Email: p.Email, EmotionalIntelligence: p.EmotionalIntelligence}
	}
	return models.ParticipantSI{ID: p.ID, Name: p.Name, Email: p.Email, SocialIntelligence: p.SocialIntelligence}
}

// ListTestingTeams lists the teams a respondent can be picked from.
// A team lead only sees their own team.
func (h *Handler) ListTestingTeams(c *gin.Context) {
	teams, err := h.Store.ListTeams(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	visible := make([]models.Team, 0, 1)
	for _, t := range teams {
		if t.ID == teamID(c) {
			visible = append(visible, t)
		}
	}
	c.JSON(http.StatusOK, visible)
}

// ListTeamEIParticipants lists a team's participants with their EI score
func (h *Handler) ListTeamEIParticipants(c *gin.Context) {
	h.listTeamScores(c, emotionalScore)
}

// ListTeamSIParticipants lists a team's participants with their SI score
func (h *Handler) ListTeamSIParticipants(c *gin.Context) {
	h.listTeamScores(c, socialScore)
}

// GetEIParticipant returns one participant with their EI score
func (h *Handler) GetEIParticipant(c *gin.Context) {
	h.getScore(c, emotionalScore)
}

// GetSIParticipant returns one participant with their SI score
func (h *Handler) GetSIParticipant(c *gin.Context) {
	h.getScore(c, socialScore)
}

func (h *Handler) listTeamScores(c *gin.Context, kind scoreKind) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if id != teamID(c) {
		h.fail(c, fmt.Errorf("%w: team %d", database.ErrNotFound, id))
		return
	}
	participants, err := h.Store.ListParticipants(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]any, len(participants))
	for i, p := range participants {
		out[i] = kind.view(p)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getScore(c *gin.Context, kind scoreKind) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.Store.GetParticipant(c.Request.Context(), teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, kind.view(*p))
}

// UpdateEIScore sets a participant's emotional intelligence score
func (h *Handler) UpdateEIScore(c *gin.Context) {
	h.updateScore(c, emotionalScore)
}

// UpdateSIScore sets a participant's social intelligence score
func (h *Handler) UpdateSIScore(c *gin.Context) {
	h.updateScore(c, socialScore)
}

// SubmitEISurvey scores the 16 item emotional intelligence questionnaire
func (h *Handler) SubmitEISurvey(c *gin.Context) {
	h.submitSurvey(c, emotionalScore, survey.EIScore)
}

// SubmitSISurvey scores the 8 item social intelligence questionnaire
func (h *Handler) SubmitSISurvey(c *gin.Context) {
	h.submitSurvey(c, socialScore, survey.SIScore)
}

func (h *Handler) updateScore(c *gin.Context, kind scoreKind) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.ScoreUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.applyScore(c, id, kind, *req.Score, req.Overwrite)
}

func (h *Handler) submitSurvey(c *gin.Context, kind scoreKind, score func([]int) (int, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.SurveySubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	value, err := score(req.Answers)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.applyScore(c, id, kind, value, req.Overwrite)
}

// applyScore stores the score unless the participant already has a non-zero
// one and the caller did not ask to overwrite it
func (h *Handler) applyScore(c *gin.Context, id uint, kind scoreKind, value int, overwrite bool) {
	ctx := c.Request.Context()
	p, err := h.Store.GetParticipant(ctx, teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	field := kind.field(p)
	if *field != 0 && !overwrite {
		c.JSON(http.StatusConflict, gin.H{
			"error":          kind.String() + " already set; resend with overwrite=true to replace it",
			"existing_score": *field,
			"new_score":      value,
		})
		return
	}

	*field = value
	if err := h.Store.SaveParticipant(ctx, p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participant": p, "score": value})
}
