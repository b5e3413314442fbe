package models

import "time"

// MaxMasteryLevel is the fully mastered level.
const MaxMasteryLevel = 5

type WordStatistics struct {
	WordID             int64      `json:"word_id"`
	TotalAttempts      int        `json:"total_attempts"`
	CorrectCount       int        `json:"correct_count"`
	WrongCount         int        `json:"wrong_count"`
	MasteryLevel       int        `json:"mastery_level"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
	LastStudyDate      *time.Time `json:"last_study_date"`
}

// WrongRate is wrong_count / total_attempts * 100, or 0 without attempts.
// It is always derived from the counters and never stored.
func (s WordStatistics) WrongRate() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.WrongCount) / float64(s.TotalAttempts) * 100
}

type StatisticsView struct {
	WordStatistics
	WrongRate float64 `json:"wrong_rate"`
}

// View pairs the statistics with the derived wrong rate for serialization.
func (s WordStatistics) View() StatisticsView {
	return StatisticsView{WordStatistics: s, WrongRate: s.WrongRate()}
}
