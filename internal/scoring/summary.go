package scoring

import (
	"math"

	"github.com/vytor/genrequiz/internal/models"
)

// Summarize aggregates the attempts of a session. Percentages are rounded
// to one decimal and the average time to the nearest second; all ratios are
// zero for an empty session.
func Summarize(sessionID int64, attempts []models.Attempt) models.SessionSummary {
	summary := models.SessionSummary{SessionID: sessionID}
	for _, a := range attempts {
		summary.TotalAttempts++
		if a.Correct {
			summary.CorrectCount++
		}
		summary.TotalPoints += a.Points
		summary.TotalTimeSeconds += a.TimeTakenSeconds
		summary.TotalHintsUsed += a.HintsUsed
	}

	summary.MaxPossiblePoints = summary.TotalAttempts * PointsPerQuestion
	summary.AccuracyPercent = percent(summary.CorrectCount, summary.TotalAttempts)
	summary.PointsPercent = percent(summary.TotalPoints, summary.MaxPossiblePoints)
	if summary.TotalAttempts > 0 {
		summary.AverageTimeSeconds = int(math.Round(summary.TotalTimeSeconds / float64(summary.TotalAttempts)))
	}
	return summary
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
