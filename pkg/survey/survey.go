// Package survey converts questionnaire answers into EI and SI scores.
package survey

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAnswers marks a submission with the wrong item count or range.
var ErrInvalidAnswers = errors.New("invalid survey answers")

const (
	// EIItems is the length of the emotional intelligence questionnaire
	EIItems = 16
	// SIItems is the length of the social intelligence questionnaire
	SIItems = 8

	minAnswer = 1
	maxAnswer = 7
)

func sum(answers []int, want int) (int, error) {
	if len(answers) != want {
		return 0, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidAnswers, want, len(answers))
	}
	total := 0
	for i, a := range answers {
		if a < minAnswer || a > maxAnswer {
			return 0, fmt.Errorf("%w: answer %d is %d, must be %d-%d", ErrInvalidAnswers, i+1, a, minAnswer, maxAnswer)
		}
		total += a
	}
	return total, nil
}

// EIScore maps 16 answers to round(((sum-16)/96)*100)
func EIScore(answers []int) (int, error) {
	s, err := sum(answers, EIItems)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(s-EIItems) / 96 * 100)), nil
}

// SIScore maps 8 answers to round((sum/56)*100)
func SIScore(answers []int) (int, error) {
	s, err := sum(answers, SIItems)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(s) / 56 * 100)), nil
}
