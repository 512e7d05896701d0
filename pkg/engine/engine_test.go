package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/metrics"
	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/roles"
	"github.com/G00gleKid/demo-code/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("connection reset")

type fakeStore struct {
	mu       sync.Mutex
	meetings map[uint]*models.Meeting
	history  map[uint][]roles.Role
	records  map[uint][]models.RoleAssignment
	nextID   uint
	usage    int
	limits   []int

	failReplace int
	failRecent  int
	delay       time.Duration
	active      int32
	maxActive   int32
}

func newFakeStore(meetings ...*models.Meeting) *fakeStore {
	s := &fakeStore{
		meetings: map[uint]*models.Meeting{},
		history:  map[uint][]roles.Role{},
		records:  map[uint][]models.RoleAssignment{},
	}
	for _, m := range meetings {
		s.meetings[m.ID] = m
	}
	return s
}

func (s *fakeStore) GetMeeting(_ context.Context, teamID, id uint) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[id]
	if !ok || m.TeamID != teamID {
		return nil, fmt.Errorf("%w: meeting %d", database.ErrNotFound, id)
	}
	cp := *m
	return &cp, nil
}

func (s *fakeStore) RecentRoles(_ context.Context, participantID uint, _ time.Time, limit int) ([]roles.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRecent > 0 {
		s.failRecent--
		return nil, errTransient
	}
	s.limits = append(s.limits, limit)
	h := s.history[participantID]
	if len(h) > limit {
		h = h[:limit]
	}
	return append([]roles.Role(nil), h...), nil
}

func (s *fakeStore) ReplaceAssignments(_ context.Context, meetingID uint, records []models.RoleAssignment) ([]models.RoleAssignment, error) {
	n := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)
	for {
		max := atomic.LoadInt32(&s.maxActive)
		if n <= max || atomic.CompareAndSwapInt32(&s.maxActive, max, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReplace > 0 {
		s.failReplace--
		return nil, errTransient
	}
	for i := range records {
		s.nextID++
		records[i].ID = s.nextID
		records[i].MeetingID = meetingID
		records[i].CreatedAt = time.Now()
	}
	s.records[meetingID] = records
	return records, nil
}

func (s *fakeStore) RecordUsage(context.Context, uint, string, int, int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage++
	return nil
}

var tenAM = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func brainstormMeeting() *models.Meeting {
	return &models.Meeting{
		ID:            7,
		TeamID:        1,
		Title:         "Ideas",
		MeetingType:   models.MeetingBrainstorm,
		ScheduledTime: tenAM,
		Participants: []models.Participant{
			{ID: 1, Name: "Anna", Chronotype: models.ChronotypeMorning, PeakHoursStart: 9, PeakHoursEnd: 12, EmotionalIntelligence: 85, SocialIntelligence: 85},
			{ID: 2, Name: "Boris", Chronotype: models.ChronotypeMorning, PeakHoursStart: 9, PeakHoursEnd: 12, EmotionalIntelligence: 60, SocialIntelligence: 65},
			{ID: 3, Name: "Clara", Chronotype: models.ChronotypeEvening, PeakHoursStart: 20, PeakHoursEnd: 23, EmotionalIntelligence: 65, SocialIntelligence: 40},
		},
	}
}

func newTestEngine(store Store, opts ...Option) *Engine {
	opts = append([]Option{WithRetryBackoff(0), WithStoreTimeout(time.Second)}, opts...)
	return New(store, scoring.NewScorer(roles.Default()), opts...)
}

func roleOf(res *models.RoleAssignmentResult, participantID uint) string {
	for _, a := range res.Assignments {
		if a.ParticipantID == participantID {
			return a.Role
		}
	}
	return ""
}

func TestAssignRoles_BrainstormAtPeak(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	e := newTestEngine(store)

	res, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), res.MeetingID)
	assert.Equal(t, "moderator", roleOf(res, 1))
	assert.Equal(t, "ideologue", roleOf(res, 2))
	assert.Equal(t, "", roleOf(res, 3), "off-peak participant fits no energy range")
	assert.Equal(t, 2, res.TotalAssigned)
	assert.Equal(t, "partial", res.Status)
	assert.Equal(t, []string{"speaker", "time_manager", "critic", "mediator", "harmonizer"}, res.UnassignedRoles)
	assert.Equal(t, []uint{3}, res.UnassignedParticipants)
	assert.Equal(t, "Anna", res.Assignments[0].ParticipantName)
	assert.InDelta(t, 150, res.Assignments[0].FitnessScore, 1e-9)
	assert.Equal(t, 1, store.usage)
}

func TestAssignRoles_Deterministic(t *testing.T) {
	e := newTestEngine(newFakeStore(brainstormMeeting()))

	first, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := e.AssignRoles(context.Background(), 1, 7)
		require.NoError(t, err)
		require.Len(t, next.Assignments, len(first.Assignments))
		for j := range first.Assignments {
			assert.Equal(t, first.Assignments[j].ParticipantID, next.Assignments[j].ParticipantID)
			assert.Equal(t, first.Assignments[j].Role, next.Assignments[j].Role)
			assert.Equal(t, first.Assignments[j].FitnessScore, next.Assignments[j].FitnessScore)
		}
	}
}

func TestAssignRoles_ReplacesPriorRecords(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	e := newTestEngine(store)

	_, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	_, err = e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Len(t, store.records[7], 2, "second run replaces, never appends")
}

func TestAssignRoles_EmptyRoster(t *testing.T) {
	m := brainstormMeeting()
	m.Participants = nil
	e := newTestEngine(newFakeStore(m))

	res, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalAssigned)
	assert.Empty(t, res.Assignments)
	assert.NotNil(t, res.Assignments)
	assert.Equal(t, "empty", res.Status)
	assert.Len(t, res.UnassignedRoles, len(roles.All))
}

func TestAssignRoles_FourInARowExcludesRole(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	store.history[1] = []roles.Role{roles.Moderator, roles.Moderator, roles.Moderator, roles.Moderator}
	e := newTestEngine(store)

	res, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.NotEqual(t, "moderator", roleOf(res, 1))
	assert.Equal(t, "speaker", roleOf(res, 1))
}

func TestAssignRoles_ReadsConfiguredHistoryLimit(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	e := newTestEngine(store, WithHistoryLimit(6))

	_, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 6, 6}, store.limits)

	store.limits = nil
	_, err = newTestEngine(store).AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{database.DefaultHistoryLimit, database.DefaultHistoryLimit, database.DefaultHistoryLimit}, store.limits)
}

func TestAssignRoles_SkipsInvalidParticipant(t *testing.T) {
	m := brainstormMeeting()
	m.Participants[1].EmotionalIntelligence = 140
	reg := metrics.NewManager()
	e := newTestEngine(newFakeStore(m), WithMetrics(reg))

	res, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "", roleOf(res, 2))
	assert.Equal(t, "moderator", roleOf(res, 1))
	assert.Contains(t, res.UnassignedParticipants, uint(2))
}

func TestAssignRoles_NotFound(t *testing.T) {
	e := newTestEngine(newFakeStore(brainstormMeeting()))

	_, err := e.AssignRoles(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrMeetingNotFound)

	_, err = e.AssignRoles(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrMeetingNotFound, "other team's meeting")
}

func counterValue(t *testing.T, m *metrics.Manager, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestAssignRoles_RetriesOnce(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	store.failReplace = 1
	store.failRecent = 1
	m := metrics.NewManager()
	e := newTestEngine(store, WithMetrics(m))

	res, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalAssigned)
	assert.Len(t, store.records[7], 2)
	assert.Equal(t, 2.0, counterValue(t, m, "roles_store_retries_total"))
	assert.Equal(t, 1.0, counterValue(t, m, "roles_assignment_runs_total"))
}

func TestAssignRoles_StoreFailureKeepsPriorRecords(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	e := newTestEngine(store)

	_, err := e.AssignRoles(context.Background(), 1, 7)
	require.NoError(t, err)
	before := append([]models.RoleAssignment(nil), store.records[7]...)

	store.failReplace = 2
	_, err = e.AssignRoles(context.Background(), 1, 7)
	require.ErrorIs(t, err, ErrStore)
	assert.Equal(t, before, store.records[7])
	assert.Equal(t, 1, store.usage, "failed runs are not counted")
}

func TestAssignRoles_CanceledBeforeRun(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	e := newTestEngine(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.AssignRoles(ctx, 1, 7)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.records)
}

func TestAssignRoles_SameMeetingSerialized(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	store.delay = 5 * time.Millisecond
	e := newTestEngine(store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.AssignRoles(context.Background(), 1, 7)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&store.maxActive))
	assert.Len(t, store.records[7], 2)
	assert.Equal(t, 0, e.locks.size())
}

func TestAssignRoles_DifferentMeetingsInParallel(t *testing.T) {
	second := brainstormMeeting()
	second.ID = 8
	store := newFakeStore(brainstormMeeting(), second)
	store.delay = 20 * time.Millisecond
	e := newTestEngine(store)

	var wg sync.WaitGroup
	for _, id := range []uint{7, 8} {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := e.AssignRoles(context.Background(), 1, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&store.maxActive))
}

func TestPreview_DoesNotPersist(t *testing.T) {
	store := newFakeStore(brainstormMeeting())
	e := newTestEngine(store)

	plan, err := e.Preview(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Len(t, plan.Scores, 3*len(roles.All))
	assert.Len(t, plan.Outcome.Assignments, 2)
	assert.Empty(t, store.records)
	assert.Equal(t, 0, store.usage)
}
