// Package engine runs role assignment for a stored meeting: it loads the
// roster and history, scores and assigns, and replaces the meeting's records.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/metrics"
	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/roles"
	"github.com/G00gleKid/demo-code/pkg/scoring"
	"go.uber.org/zap"
)

// Sentinel errors returned by the engine
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrStore           = errors.New("store unavailable")
)

// Store is the persistence the engine needs
type Store interface {
	GetMeeting(ctx context.Context, teamID, id uint) (*models.Meeting, error)
	RecentRoles(ctx context.Context, participantID uint, before time.Time, limit int) ([]roles.Role, error)
	ReplaceAssignments(ctx context.Context, meetingID uint, records []models.RoleAssignment) ([]models.RoleAssignment, error)
	RecordUsage(ctx context.Context, teamID uint, date string, assigned, participants int) error
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records runs and retries
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithStoreTimeout bounds every single store call
func WithStoreTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.storeTimeout = d
		}
	}
}

// WithRetryBackoff sets the pause before the single retry
func WithRetryBackoff(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.retryBackoff = d
		}
	}
}

// WithHistoryLimit sets how many past records are read per participant
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		if n >= scoring.ExclusionStreak {
			e.historyLimit = n
		}
	}
}

// WithClock overrides time.Now, used for usage dates
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine orchestrates assignment runs
type Engine struct {
	store        Store
	scorer       *scoring.Scorer
	logger       *zap.Logger
	metrics      *metrics.Manager
	locks        *keyedMutex
	storeTimeout time.Duration
	retryBackoff time.Duration
	historyLimit int
	now          func() time.Time
}

// New creates an engine over a store and scorer
func New(store Store, scorer *scoring.Scorer, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		scorer:       scorer,
		logger:       zap.NewNop(),
		locks:        newKeyedMutex(),
		storeTimeout: 5 * time.Second,
		retryBackoff: 200 * time.Millisecond,
		historyLimit: database.DefaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scorer returns the scorer used by runs
func (e *Engine) Scorer() *scoring.Scorer {
	return e.scorer
}

// AssignRoles computes and stores the role assignment of a meeting. Runs for
// the same meeting are serialized. On failure the meeting's previous records
// are left as they were.
func (e *Engine) AssignRoles(ctx context.Context, teamID, meetingID uint) (*models.RoleAssignmentResult, error) {
	unlock := e.locks.Lock(meetingID)
	defer unlock()

	start := time.Now()
	result, err := e.run(ctx, teamID, meetingID)
	status := "error"
	assigned := 0
	if err == nil {
		status = result.Status
		assigned = result.TotalAssigned
	}
	e.metrics.RecordRun(status, assigned, time.Since(start))
	return result, err
}

func (e *Engine) run(ctx context.Context, teamID, meetingID uint) (*models.RoleAssignmentResult, error) {
	meeting, plan, err := e.prepare(ctx, teamID, meetingID)
	if err != nil {
		return nil, err
	}

	records := make([]models.RoleAssignment, len(plan.Outcome.Assignments))
	for i, a := range plan.Outcome.Assignments {
		records[i] = models.RoleAssignment{
			MeetingID:     meeting.ID,
			ParticipantID: a.ParticipantID,
			Role:          string(a.Role),
			FitnessScore:  a.Score,
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var saved []models.RoleAssignment
	err = e.withRetry(ctx, "replace assignments", func(ctx context.Context) error {
		out, err := e.store.ReplaceAssignments(ctx, meeting.ID, cloneRecords(records))
		if err == nil {
			saved = out
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(meeting.Participants))
	for _, p := range meeting.Participants {
		names[p.ID] = p.Name
	}
	for i := range saved {
		saved[i].ParticipantName = names[saved[i].ParticipantID]
	}

	result := &models.RoleAssignmentResult{
		MeetingID:              meeting.ID,
		Assignments:            saved,
		TotalAssigned:          len(saved),
		Status:                 string(plan.Outcome.Status),
		UnassignedRoles:        roleNames(plan.Outcome.UnassignedRoles),
		UnassignedParticipants: plan.Outcome.UnassignedParticipants,
	}
	if result.Assignments == nil {
		result.Assignments = []models.RoleAssignment{}
	}
	if result.UnassignedParticipants == nil {
		result.UnassignedParticipants = []uint{}
	}

	e.logger.Info("roles assigned",
		zap.Uint("meeting_id", meeting.ID),
		zap.String("meeting_type", meeting.MeetingType),
		zap.Int("participants", len(meeting.Participants)),
		zap.Int("assigned", result.TotalAssigned),
		zap.String("status", result.Status),
	)

	date := e.now().UTC().Format("2006-01-02")
	if err := e.store.RecordUsage(ctx, teamID, date, result.TotalAssigned, len(meeting.Participants)); err != nil {
		e.logger.Warn("failed to record usage", zap.Uint("team_id", teamID), zap.Error(err))
	}
	return result, nil
}

// Preview scores a meeting without persisting anything
func (e *Engine) Preview(ctx context.Context, teamID, meetingID uint) (Plan, error) {
	_, plan, err := e.prepare(ctx, teamID, meetingID)
	return plan, err
}

// prepare loads the meeting and its roster history and builds the plan
func (e *Engine) prepare(ctx context.Context, teamID, meetingID uint) (*models.Meeting, Plan, error) {
	var meeting *models.Meeting
	err := e.withRetry(ctx, "load meeting", func(ctx context.Context) error {
		m, err := e.store.GetMeeting(ctx, teamID, meetingID)
		if err == nil {
			meeting = m
		}
		return err
	})
	if errors.Is(err, database.ErrNotFound) {
		return nil, Plan{}, fmt.Errorf("%w: %d", ErrMeetingNotFound, meetingID)
	}
	if err != nil {
		return nil, Plan{}, err
	}

	history := make(map[uint][]roles.Role, len(meeting.Participants))
	for _, p := range meeting.Participants {
		pid := p.ID
		err := e.withRetry(ctx, "read history", func(ctx context.Context) error {
			recent, err := e.store.RecentRoles(ctx, pid, meeting.ScheduledTime, e.historyLimit)
			if err == nil {
				history[pid] = recent
			}
			return err
		})
		if err != nil {
			return nil, Plan{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, Plan{}, err
	}

	plan := BuildPlan(e.scorer, meeting.MeetingType, meeting.ScheduledTime, meeting.Participants, history)
	for _, id := range plan.Rejected {
		e.metrics.RecordRejectedParticipant()
		e.logger.Warn("participant skipped: invalid traits",
			zap.Uint("meeting_id", meeting.ID),
			zap.Uint("participant_id", id),
		)
	}
	return meeting, plan, nil
}

// withRetry runs fn under the store timeout and retries it once after the
// backoff. Not-found errors and a finished caller context are not retried.
func (e *Engine) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			e.metrics.RecordStoreRetry()
			e.logger.Warn("retrying store call", zap.String("op", op), zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.retryBackoff):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.storeTimeout)
		err = fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		if errors.Is(err, database.ErrNotFound) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	e.logger.Error("store call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

func cloneRecords(records []models.RoleAssignment) []models.RoleAssignment {
	out := make([]models.RoleAssignment, len(records))
	copy(out, records)
	return out
}

func roleNames(rs []roles.Role) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
