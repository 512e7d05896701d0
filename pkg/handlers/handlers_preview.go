package handlers

import (
	"net/http"

	"github.com/G00gleKid/demo-code/pkg/engine"
	"github.com/gin-gonic/gin"
)

// PreviewAssignment scores a meeting's roster without storing anything. The
// response lists every scored pair, the greedy outcome and the participants
// rejected for invalid traits.
func (h *Handler) PreviewAssignment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := h.Engine.Preview(c.Request.Context(), teamID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	scores := plan.Scores
	if scores == nil {
		scores = []engine.PairScore{}
	}
	assignments := make([]gin.H, 0, len(plan.Outcome.Assignments))
	for _, a := range plan.Outcome.Assignments {
		assignments = append(assignments, gin.H{
			"participant_id": a.ParticipantID,
			"role":           a.Role,
			"fitness_score":  a.Score,
		})
	}
	rejected := plan.Rejected
	if rejected == nil {
		rejected = []uint{}
	}

	c.JSON(http.StatusOK, gin.H{
		"meeting_id":              id,
		"valid":                   len(rejected) == 0,
		"status":                  plan.Outcome.Status,
		"assignments":             assignments,
		"unassigned_roles":        plan.Outcome.UnassignedRoles,
		"unassigned_participants": plan.Outcome.UnassignedParticipants,
		"rejected_participants":   rejected,
		"scores":                  scores,
	})
}
