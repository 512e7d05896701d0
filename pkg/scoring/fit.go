package scoring

// DefaultSoftMargin is how far outside a requirement range a value may be
// before its fit reaches zero.
const DefaultSoftMargin = 20.0

// RangeFit is 1 inside [min,max] and falls linearly to 0 at margin points
// beyond the nearer bound.
func RangeFit(value, min, max, margin float64) float64 {
	if value >= min && value <= max {
		return 1
	}

	gap := value - max
	if value < min {
		gap = min - value
	}
	if margin <= 0 || gap >= margin {
		return 0
	}
	return 1 - gap/margin
}
