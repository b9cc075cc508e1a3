package scoring

import (
	"strings"

	"github.com/vytor/genrequiz/internal/models"
)

const (
	// PointsPerQuestion is awarded for a correct answer given without hints.
	PointsPerQuestion = 10
	// HintPenalty is subtracted per hint used before a correct answer.
	HintPenalty = 5
)

// IsCorrect compares a submitted gender against the expected one, ignoring
// case and surrounding whitespace.
func IsCorrect(submitted string, expected models.Gender) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), string(expected))
}

// Points returns the reward for one attempt. Wrong answers earn nothing
// regardless of hints; hints reduce a correct answer's reward down to zero.
func Points(correct bool, hintsUsed int) int {
	if !correct {
		return 0
	}
	if hintsUsed < 0 {
		hintsUsed = 0
	}
	return max(0, PointsPerQuestion-HintPenalty*hintsUsed)
}
