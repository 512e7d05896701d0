package roles

// DefaultRequirements is the requirement matrix used when no catalog file is configured.
func DefaultRequirements() map[Role]Requirement {
	return map[Role]Requirement{
		Moderator:   {EIMin: 75, EIMax: 100, SIMin: 75, SIMax: 100, EnergyMin: 70, EnergyMax: 100},
		Speaker:     {EIMin: 60, EIMax: 85, SIMin: 75, SIMax: 100, EnergyMin: 80, EnergyMax: 100},
		TimeManager: {EIMin: 50, EIMax: 75, SIMin: 30, SIMax: 60, EnergyMin: 60, EnergyMax: 90},
		Critic:      {EIMin: 60, EIMax: 85, SIMin: 50, SIMax: 75, EnergyMin: 40, EnergyMax: 70},
		Ideologue:   {EIMin: 50, EIMax: 75, SIMin: 60, SIMax: 85, EnergyMin: 75, EnergyMax: 100},
		Mediator:    {EIMin: 80, EIMax: 100, SIMin: 70, SIMax: 95, EnergyMin: 65, EnergyMax: 90},
		Harmonizer:  {EIMin: 70, EIMax: 95, SIMin: 75, SIMax: 100, EnergyMin: 60, EnergyMax: 85},
	}
}

// DefaultMultipliers is the per meeting type weighting of each role.
func DefaultMultipliers() map[string]map[Role]float64 {
	return map[string]map[Role]float64{
		"brainstorm": {
			Moderator: 1.5, Ideologue: 1.5, Harmonizer: 1.3, Critic: 0.5,
			TimeManager: 0.7, Speaker: 1.0, Mediator: 1.0,
		},
		"review": {
			Moderator: 1.4, Critic: 1.5, Mediator: 1.3, Ideologue: 0.6,
			Speaker: 0.8, TimeManager: 1.0, Harmonizer: 1.0,
		},
		"planning": {
			Moderator: 1.3, TimeManager: 1.4, Critic: 1.2, Harmonizer: 0.8,
			Speaker: 1.0, Ideologue: 1.0, Mediator: 1.0,
		},
		"status_update": {
			Speaker: 1.4, TimeManager: 1.5, Moderator: 1.2, Ideologue: 0.5,
			Mediator: 0.6, Critic: 1.0, Harmonizer: 1.0,
		},
	}
}
