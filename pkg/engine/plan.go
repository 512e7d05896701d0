package engine

import (
	"time"

	"github.com/G00gleKid/demo-code/pkg/assigner"
	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/roles"
	"github.com/G00gleKid/demo-code/pkg/scoring"
)

// PairScore is the scored breakdown of one (participant, role) pair
type PairScore struct {
	ParticipantID uint       `json:"participant_id"`
	Role          roles.Role `json:"role"`
	scoring.Breakdown
}

// Plan is the pure result of scoring a roster and running the greedy pass.
type Plan struct {
	Scores   []PairScore
	Outcome  assigner.Outcome
	Rejected []uint
}

// BuildPlan scores every valid roster member against every role and assigns
// greedily. history holds each participant's recent roles, most recent first.
// Participants with invalid traits are listed in Rejected and take no role.
func BuildPlan(scorer *scoring.Scorer, meetingType string, at time.Time, roster []models.Participant, history map[uint][]roles.Role) Plan {
	var plan Plan
	valid := make([]uint, 0, len(roster))
	candidates := make([]assigner.Candidate, 0, len(roster)*len(roles.All))

	for _, p := range roster {
		if err := scoring.ValidateParticipant(p); err != nil {
			plan.Rejected = append(plan.Rejected, p.ID)
			continue
		}
		valid = append(valid, p.ID)

		recent := history[p.ID]
		for _, role := range roles.All {
			b := scorer.Score(p, role, meetingType, at, scoring.ConsecutiveCount(recent, role))
			plan.Scores = append(plan.Scores, PairScore{ParticipantID: p.ID, Role: role, Breakdown: b})
			if b.Eligible {
				candidates = append(candidates, assigner.Candidate{ParticipantID: p.ID, Role: role, Score: b.Final})
			}
		}
	}

	plan.Outcome = assigner.NewAssigner(valid, roles.All).Assign(candidates)
	// rejected participants are still on the roster without a role
	plan.Outcome.UnassignedParticipants = append(plan.Outcome.UnassignedParticipants, plan.Rejected...)
	return plan
}
