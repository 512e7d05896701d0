package assigner

import (
	"sort"

	"github.com/G00gleKid/demo-code/pkg/roles"
)

// Status describes how far an assignment run got
type Status string

const (
	StatusFull    Status = "full"
	StatusPartial Status = "partial"
	StatusEmpty   Status = "empty"
)

// Candidate is a scored (participant, role) pair
type Candidate struct {
	ParticipantID uint
	Role          roles.Role
	Score         float64
}

// Outcome is the result of a greedy pass
type Outcome struct {
	Assignments            []Candidate
	UnassignedRoles        []roles.Role
	UnassignedParticipants []uint
	Status                 Status
}

// Assigner matches participants to roles one-to-one
type Assigner struct {
	Participants []uint
	Roles        []roles.Role
}

// NewAssigner creates an assigner over a roster and role set
func NewAssigner(participants []uint, roleSet []roles.Role) *Assigner {
	return &Assigner{
		Participants: participants,
		Roles:        roleSet,
	}
}

// SortCandidates orders candidates by score descending, then participant id
// ascending, then role name.
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.ParticipantID != b.ParticipantID {
			return a.ParticipantID < b.ParticipantID
		}
		return a.Role < b.Role
	})
}

// Assign walks candidates best first and takes a pair only when both the
// participant and the role are still free. Pairs with a non-positive score
// are never taken.
func (a *Assigner) Assign(candidates []Candidate) Outcome {
	wanted := make(map[roles.Role]bool, len(a.Roles))
	for _, r := range a.Roles {
		wanted[r] = true
	}
	onRoster := make(map[uint]bool, len(a.Participants))
	for _, id := range a.Participants {
		onRoster[id] = true
	}

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score > 0 && wanted[c.Role] && onRoster[c.ParticipantID] {
			eligible = append(eligible, c)
		}
	}
	SortCandidates(eligible)

	takenRoles := make(map[roles.Role]bool, len(a.Roles))
	busy := make(map[uint]bool, len(a.Participants))
	var out Outcome

	for _, c := range eligible {
		if len(takenRoles) == len(wanted) {
			break
		}
		if busy[c.ParticipantID] || takenRoles[c.Role] {
			continue
		}
		out.Assignments = append(out.Assignments, c)
		busy[c.ParticipantID] = true
		takenRoles[c.Role] = true
	}

	for _, r := range a.Roles {
		if !takenRoles[r] {
			out.UnassignedRoles = append(out.UnassignedRoles, r)
		}
	}
	for _, id := range a.Participants {
		if !busy[id] {
			out.UnassignedParticipants = append(out.UnassignedParticipants, id)
		}
	}

	switch {
	case len(out.Assignments) == 0:
		out.Status = StatusEmpty
	case len(out.UnassignedRoles) == 0:
		out.Status = StatusFull
	default:
		out.Status = StatusPartial
	}
	return out
}
