package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnergy_InsideWindowIsFull(t *testing.T) {
	m := EnergyModel{DecayPerHour: DefaultDecayPerHour}
	for _, c := range []string{"morning", "evening", "intermediate"} {
		assert.Equal(t, 100.0, m.Energy(Biorhythm{Chronotype: c, PeakStart: 9, PeakEnd: 17}, 13), c)
	}
}

func TestEnergy_OffPeakDecaysWithCircularDistance(t *testing.T) {
	m := EnergyModel{DecayPerHour: DefaultDecayPerHour}
	b := Biorhythm{Chronotype: "morning", PeakStart: 9, PeakEnd: 17}

	assert.Less(t, m.Energy(b, 1), 100.0)
	assert.InDelta(t, 100-8*DefaultDecayPerHour, m.Energy(b, 1), 1e-9)

	// 17:00 through 01:00 walks away from the window one hour at a time
	prev := m.Energy(b, 17)
	for i := 1; i <= 8; i++ {
		hour := float64((17 + i) % 24)
		e := m.Energy(b, hour)
		assert.Less(t, e, prev, "hour %v", hour)
		prev = e
	}
}

func TestEnergy_WindowWrappingMidnight(t *testing.T) {
	m := EnergyModel{DecayPerHour: DefaultDecayPerHour}
	b := Biorhythm{Chronotype: "evening", PeakStart: 22, PeakEnd: 2}

	assert.Equal(t, 100.0, m.Energy(b, 23))
	assert.Equal(t, 100.0, m.Energy(b, 0))
	assert.Equal(t, 100.0, m.Energy(b, 1.5))
	assert.InDelta(t, 100-2*DefaultDecayPerHour, m.Energy(b, 4), 1e-9)
	assert.InDelta(t, 100-10*DefaultDecayPerHour, m.Energy(b, 12), 1e-9)
}

// A zero-width window is always peak rather than undefined.
func TestEnergy_ZeroWidthWindowIsAlwaysPeak(t *testing.T) {
	m := EnergyModel{DecayPerHour: DefaultDecayPerHour}
	b := Biorhythm{Chronotype: "intermediate", PeakStart: 5, PeakEnd: 5}
	for h := 0; h < 24; h++ {
		assert.Equal(t, 100.0, m.Energy(b, float64(h)), "hour %d", h)
	}
}

func TestEnergy_ClampsAtZero(t *testing.T) {
	m := EnergyModel{DecayPerHour: 25}
	assert.Equal(t, 0.0, m.Energy(Biorhythm{PeakStart: 9, PeakEnd: 17}, 1))
}

func TestEnergy_NonPositiveDecayFallsBackToDefault(t *testing.T) {
	m := EnergyModel{}
	assert.InDelta(t, 100-DefaultDecayPerHour, m.Energy(Biorhythm{PeakStart: 9, PeakEnd: 17}, 18), 1e-9)
}

func TestHourOf(t *testing.T) {
	at := time.Date(2026, 1, 5, 13, 30, 0, 0, time.UTC)
	assert.Equal(t, 13.0, HourOf(at, time.UTC))

	plusThree := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, 16.0, HourOf(at, plusThree))
	assert.Equal(t, 13.0, HourOf(at, nil))
}
