package assigner

import (
	"testing"

	"github.com/G00gleKid/demo-code/pkg/roles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign_HighestScoreFirst(t *testing.T) {
	a := NewAssigner([]uint{1, 2}, []roles.Role{roles.Moderator, roles.Critic})

	out := a.Assign([]Candidate{
		{ParticipantID: 1, Role: roles.Moderator, Score: 90},
		{ParticipantID: 1, Role: roles.Critic, Score: 80},
		{ParticipantID: 2, Role: roles.Moderator, Score: 85},
		{ParticipantID: 2, Role: roles.Critic, Score: 10},
	})

	require.Len(t, out.Assignments, 2)
	assert.Equal(t, Candidate{ParticipantID: 1, Role: roles.Moderator, Score: 90}, out.Assignments[0])
	// the 85 pair is skipped because moderator is taken, not retried
	assert.Equal(t, Candidate{ParticipantID: 2, Role: roles.Critic, Score: 10}, out.Assignments[1])
	assert.Equal(t, StatusFull, out.Status)
	assert.Empty(t, out.UnassignedRoles)
	assert.Empty(t, out.UnassignedParticipants)
}

func TestAssign_TieBreaksByParticipantThenRole(t *testing.T) {
	a := NewAssigner([]uint{7, 3}, []roles.Role{roles.Speaker, roles.Critic})

	out := a.Assign([]Candidate{
		{ParticipantID: 7, Role: roles.Critic, Score: 50},
		{ParticipantID: 3, Role: roles.Speaker, Score: 50},
		{ParticipantID: 3, Role: roles.Critic, Score: 50},
		{ParticipantID: 7, Role: roles.Speaker, Score: 50},
	})

	require.Len(t, out.Assignments, 2)
	assert.Equal(t, uint(3), out.Assignments[0].ParticipantID)
	assert.Equal(t, roles.Critic, out.Assignments[0].Role)
	assert.Equal(t, uint(7), out.Assignments[1].ParticipantID)
	assert.Equal(t, roles.Speaker, out.Assignments[1].Role)
}

func TestAssign_ZeroScoresNeverTaken(t *testing.T) {
	a := NewAssigner([]uint{1}, []roles.Role{roles.Mediator})

	out := a.Assign([]Candidate{{ParticipantID: 1, Role: roles.Mediator, Score: 0}})

	assert.Empty(t, out.Assignments)
	assert.Equal(t, StatusEmpty, out.Status)
	assert.Equal(t, []roles.Role{roles.Mediator}, out.UnassignedRoles)
	assert.Equal(t, []uint{1}, out.UnassignedParticipants)
}

func TestAssign_FewerParticipantsThanRoles(t *testing.T) {
	a := NewAssigner([]uint{1, 2}, roles.All)

	var cands []Candidate
	for _, id := range []uint{1, 2} {
		for _, r := range roles.All {
			cands = append(cands, Candidate{ParticipantID: id, Role: r, Score: 10})
		}
	}
	out := a.Assign(cands)

	assert.Len(t, out.Assignments, 2)
	assert.Len(t, out.UnassignedRoles, 5)
	assert.Empty(t, out.UnassignedParticipants)
	assert.Equal(t, StatusPartial, out.Status)
}

func TestAssign_MoreParticipantsThanRoles(t *testing.T) {
	ids := []uint{1, 2, 3, 4, 5, 6, 7, 8, 9}
	a := NewAssigner(ids, roles.All)

	var cands []Candidate
	for _, id := range ids {
		for i, r := range roles.All {
			cands = append(cands, Candidate{ParticipantID: id, Role: r, Score: float64(id*10 + uint(i))})
		}
	}
	out := a.Assign(cands)

	assert.Len(t, out.Assignments, 7)
	assert.Equal(t, StatusFull, out.Status)
	assert.Equal(t, []uint{1, 2}, out.UnassignedParticipants)

	seenP := map[uint]bool{}
	seenR := map[roles.Role]bool{}
	for _, c := range out.Assignments {
		assert.False(t, seenP[c.ParticipantID], "participant %d twice", c.ParticipantID)
		assert.False(t, seenR[c.Role], "role %s twice", c.Role)
		seenP[c.ParticipantID] = true
		seenR[c.Role] = true
	}
}

func TestAssign_IgnoresPairsOutsideRosterOrRoleSet(t *testing.T) {
	a := NewAssigner([]uint{1}, []roles.Role{roles.Critic})

	out := a.Assign([]Candidate{
		{ParticipantID: 2, Role: roles.Critic, Score: 99},
		{ParticipantID: 1, Role: roles.Speaker, Score: 98},
		{ParticipantID: 1, Role: roles.Critic, Score: 1},
	})

	require.Len(t, out.Assignments, 1)
	assert.Equal(t, Candidate{ParticipantID: 1, Role: roles.Critic, Score: 1}, out.Assignments[0])
}

func TestAssign_EmptyRoster(t *testing.T) {
	out := NewAssigner(nil, roles.All).Assign(nil)
	assert.Empty(t, out.Assignments)
	assert.Equal(t, StatusEmpty, out.Status)
	assert.Len(t, out.UnassignedRoles, 7)
}

func TestAssign_Deterministic(t *testing.T) {
	build := func() []Candidate {
		return []Candidate{
			{ParticipantID: 2, Role: roles.Critic, Score: 40},
			{ParticipantID: 1, Role: roles.Critic, Score: 40},
			{ParticipantID: 1, Role: roles.Speaker, Score: 40},
			{ParticipantID: 2, Role: roles.Speaker, Score: 40},
		}
	}
	a := NewAssigner([]uint{1, 2}, []roles.Role{roles.Critic, roles.Speaker})
	first := a.Assign(build())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, a.Assign(build()))
	}
}
