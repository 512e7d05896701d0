package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/roles"
)

// ErrInvalidParticipant marks a participant whose traits cannot be scored.
var ErrInvalidParticipant = errors.New("invalid participant")

// Option configures a Scorer
type Option func(*Scorer)

// WithDecayPerHour sets the off-peak energy decay
func WithDecayPerHour(k float64) Option {
	return func(s *Scorer) {
		if k > 0 {
			s.energy.DecayPerHour = k
		}
	}
}

// WithSoftMargin sets the range fit margin
func WithSoftMargin(margin float64) Option {
	return func(s *Scorer) {
		if margin > 0 {
			s.softMargin = margin
		}
	}
}

// WithLocation sets the time zone meeting hours are read in
func WithLocation(loc *time.Location) Option {
	return func(s *Scorer) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Scorer turns participant traits into a fitness score per role
type Scorer struct {
	catalog    *roles.Catalog
	energy     EnergyModel
	softMargin float64
	loc        *time.Location
}

// NewScorer creates a scorer backed by the catalog
func NewScorer(catalog *roles.Catalog, opts ...Option) *Scorer {
	s := &Scorer{
		catalog:    catalog,
		energy:     EnergyModel{DecayPerHour: DefaultDecayPerHour},
		softMargin: DefaultSoftMargin,
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the scorer reads
func (s *Scorer) Catalog() *roles.Catalog {
	return s.catalog
}

// Breakdown exposes every stage of a single score
type Breakdown struct {
	Energy     float64 `json:"energy"`
	Base       float64 `json:"base"`
	Multiplier float64 `json:"multiplier"`
	Penalty    float64 `json:"penalty"`
	Final      float64 `json:"final"`
	Eligible   bool    `json:"eligible"`
}

// EnergyAt is the participant's energy at the meeting time
func (s *Scorer) EnergyAt(p models.Participant, at time.Time) float64 {
	return s.energy.Energy(Biorhythm{
		Chronotype: p.Chronotype,
		PeakStart:  p.PeakHoursStart,
		PeakEnd:    p.PeakHoursEnd,
	}, HourOf(at, s.loc))
}

// Score computes the breakdown for one participant and role. consecutive is
// the participant's current streak in that role.
func (s *Scorer) Score(p models.Participant, role roles.Role, meetingType string, at time.Time, consecutive int) Breakdown {
	b := Breakdown{Energy: s.EnergyAt(p, at)}

	req, ok := s.catalog.RequirementsFor(role)
	if !ok {
		return b
	}

	b.Base = RangeFit(float64(p.EmotionalIntelligence), req.EIMin, req.EIMax, s.softMargin) *
		RangeFit(float64(p.SocialIntelligence), req.SIMin, req.SIMax, s.softMargin) *
		RangeFit(b.Energy, req.EnergyMin, req.EnergyMax, s.softMargin) * 100

	b.Multiplier = s.catalog.MultiplierFor(meetingType, role)
	b.Penalty, b.Eligible = HistoryPenalty(consecutive)
	if !b.Eligible {
		return b
	}

	b.Final = b.Base * b.Multiplier * b.Penalty
	b.Eligible = b.Final > 0
	return b
}

// ValidateParticipant rejects traits outside their documented ranges
func ValidateParticipant(p models.Participant) error {
	switch {
	case p.EmotionalIntelligence < 0 || p.EmotionalIntelligence > 100:
		return fmt.Errorf("%w: participant %d emotional_intelligence %d outside [0,100]", ErrInvalidParticipant, p.ID, p.EmotionalIntelligence)
	case p.SocialIntelligence < 0 || p.SocialIntelligence > 100:
		return fmt.Errorf("%w: participant %d social_intelligence %d outside [0,100]", ErrInvalidParticipant, p.ID, p.SocialIntelligence)
	case p.PeakHoursStart < 0 || p.PeakHoursStart > 23 || p.PeakHoursEnd < 0 || p.PeakHoursEnd > 23:
		return fmt.Errorf("%w: participant %d peak hours %d-%d outside 0-23", ErrInvalidParticipant, p.ID, p.PeakHoursStart, p.PeakHoursEnd)
	}
	switch p.Chronotype {
	case models.ChronotypeMorning, models.ChronotypeEvening, models.ChronotypeIntermediate:
		return nil
	}
	return fmt.Errorf("%w: participant %d chronotype %q", ErrInvalidParticipant, p.ID, p.Chronotype)
}
