// Package roles holds the fixed meeting role set and the requirement catalog
// used to score participants against each role.
package roles

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a malformed requirement or multiplier table.
var ErrConfiguration = errors.New("role configuration error")

// Role is one of the seven meeting roles
type Role string

const (
	Moderator   Role = "moderator"
	Speaker     Role = "speaker"
	TimeManager Role = "time_manager"
	Critic      Role = "critic"
	Ideologue   Role = "ideologue"
	Mediator    Role = "mediator"
	Harmonizer  Role = "harmonizer"
)

// All is the canonical role order.
var All = []Role{Moderator, Speaker, TimeManager, Critic, Ideologue, Mediator, Harmonizer}

// Valid reports whether r is one of the seven roles
func (r Role) Valid() bool {
	for _, known := range All {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts a role name, rejecting anything outside the fixed set
func ParseRole(name string) (Role, error) {
	r := Role(name)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrConfiguration, name)
	}
	return r, nil
}

// Requirement bounds the EI, SI and energy values a role prefers.
type Requirement struct {
	EIMin     float64 `json:"ei_min" yaml:"ei_min"`
	EIMax     float64 `json:"ei_max" yaml:"ei_max"`
	SIMin     float64 `json:"si_min" yaml:"si_min"`
	SIMax     float64 `json:"si_max" yaml:"si_max"`
	EnergyMin float64 `json:"energy_min" yaml:"energy_min"`
	EnergyMax float64 `json:"energy_max" yaml:"energy_max"`
}

// Validate checks every bound lies in [0,100] with min <= max
func (r Requirement) Validate() error {
	pairs := []struct {
		name     string
		min, max float64
	}{
		{"ei", r.EIMin, r.EIMax},
		{"si", r.SIMin, r.SIMax},
		{"energy", r.EnergyMin, r.EnergyMax},
	}
	for _, p := range pairs {
		if p.min < 0 || p.max > 100 {
			return fmt.Errorf("%s range [%g,%g] outside [0,100]", p.name, p.min, p.max)
		}
		if p.min > p.max {
			return fmt.Errorf("%s min %g greater than max %g", p.name, p.min, p.max)
		}
	}
	return nil
}
