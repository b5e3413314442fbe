package learning

import "github.com/vytor/vocabflash/internal/models"

// DefaultUpThreshold is the streak of correct answers that raises mastery.
const DefaultUpThreshold = 3

const masteryDownWrongRate = 50.0

// AdjustMastery moves level by at most one step. A streak of at least
// upThreshold raises it; otherwise a wrong rate above 50% lowers it.
func AdjustMastery(level, consecutiveCorrect int, wrongRate float64, upThreshold int) int {
	if upThreshold <= 0 {
		upThreshold = DefaultUpThreshold
	}
	switch {
	case consecutiveCorrect >= upThreshold:
		level++
	case wrongRate > masteryDownWrongRate && level > 0:
		level--
	}
	return max(0, min(level, models.MaxMasteryLevel))
}

// ApplyAnswer folds one answer into stats and re-runs the mastery rule.
func ApplyAnswer(stats *models.WordStatistics, isCorrect bool, upThreshold int) {
	stats.TotalAttempts++
	if isCorrect {
		stats.CorrectCount++
		stats.ConsecutiveCorrect++
	} else {
		stats.WrongCount++
		stats.ConsecutiveCorrect = 0
	}
	stats.MasteryLevel = AdjustMastery(stats.MasteryLevel, stats.ConsecutiveCorrect, stats.WrongRate(), upThreshold)
}
