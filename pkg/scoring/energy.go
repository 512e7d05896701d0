// Package scoring computes how well a participant fits a meeting role.
package scoring

import (
	"math"
	"time"
)

const hoursPerDay = 24.0

// DefaultDecayPerHour drops energy to zero twelve hours away from the peak window.
const DefaultDecayPerHour = 100.0 / 12.0

// Biorhythm is the part of a participant that drives the energy model.
// Chronotype is informational; the peak window already encodes it.
type Biorhythm struct {
	Chronotype string
	PeakStart  int
	PeakEnd    int
}

// EnergyModel maps a time of day to an energy level in [0,100]
type EnergyModel struct {
	DecayPerHour float64
}

// Energy returns 100 inside the peak window [PeakStart, PeakEnd) and decays
// linearly with the circular distance to the nearer window boundary.
// A zero-width window (PeakStart == PeakEnd) is treated as always peak.
func (m EnergyModel) Energy(b Biorhythm, hour float64) float64 {
	if b.PeakStart == b.PeakEnd || inWindow(b.PeakStart, b.PeakEnd, hour) {
		return 100
	}

	d := math.Min(
		circularDistance(hour, float64(b.PeakStart)),
		circularDistance(hour, float64(b.PeakEnd)),
	)
	return math.Max(0, 100-m.decay()*d)
}

func (m EnergyModel) decay() float64 {
	if m.DecayPerHour <= 0 {
		return DefaultDecayPerHour
	}
	return m.DecayPerHour
}

// HourOf returns the whole hour of day of t in loc. Minutes are dropped,
// so 08:30 scores the same as 08:00.
func HourOf(t time.Time, loc *time.Location) float64 {
	if loc != nil {
		t = t.In(loc)
	}
	return float64(t.Hour())
}

func inWindow(start, end int, hour float64) bool {
	s, e := float64(start), float64(end)
	if start < end {
		return hour >= s && hour < e
	}
	// wraps midnight, e.g. 22-2
	return hour >= s || hour < e
}

func circularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), hoursPerDay)
	return math.Min(d, hoursPerDay-d)
}
