package scoring

import "github.com/G00gleKid/demo-code/pkg/roles"

// ExclusionStreak is the streak length at which a participant can no longer
// take the same role again.
const ExclusionStreak = 4

// HistoryPenalty maps how many times in a row a participant already held a
// role to a score multiplier. eligible is false once the streak reaches
// ExclusionStreak.
func HistoryPenalty(consecutive int) (multiplier float64, eligible bool) {
	switch {
	case consecutive >= ExclusionStreak:
		return 0, false
	case consecutive == 3:
		return 0.3, true
	case consecutive == 2:
		return 0.6, true
	default:
		return 1.0, true
	}
}

// ConsecutiveCount counts how many leading entries of recent, ordered most
// recent first, equal role.
func ConsecutiveCount(recent []roles.Role, role roles.Role) int {
	n := 0
	for _, r := range recent {
		if r != role {
			break
		}
		n++
	}
	return n
}
