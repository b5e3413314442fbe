package models

import "time"

type DailySummary struct {
	Date         string  `json:"date"`
	WordsLearned int     `json:"words_learned"`
	Correct      int     `json:"correct"`
	Wrong        int     `json:"wrong"`
	Sessions     int     `json:"sessions"`
	Accuracy     float64 `json:"accuracy"`
	StudyMinutes float64 `json:"study_minutes"`
}

type TodaySummary struct {
	DailySummary
	GoalAchievement float64 `json:"goal_achievement"`
	StreakDays      int     `json:"streak_days"`
}

type WeeklySummary struct {
	TotalWords    int     `json:"total_words"`
	TotalSessions int     `json:"total_sessions"`
	AvgAccuracy   float64 `json:"avg_accuracy"`
	ActiveDays    int     `json:"active_days"`
	DailyAverage  float64 `json:"daily_average"`
}

type TrendPoint struct {
	Date     string  `json:"date"`
	Words    int     `json:"words"`
	Accuracy float64 `json:"accuracy"`
}

type GoalAchievement struct {
	DailyWordGoal        int     `json:"daily_word_goal"`
	DailyWordActual      int     `json:"daily_word_actual"`
	DailyWordAchievement float64 `json:"daily_word_achievement"`
	DailyTimeGoal        int     `json:"daily_time_goal"`
	DailyTimeActual      float64 `json:"daily_time_actual"`
	DailyTimeAchievement float64 `json:"daily_time_achievement"`
}

// SessionRow is a finished session as read for aggregation.
type SessionRow struct {
	ID           int64      `db:"session_id"`
	Type         string     `db:"session_type"`
	StartedAt    time.Time  `db:"started_at"`
	EndedAt      *time.Time `db:"ended_at"`
	TotalWords   int        `db:"total_words"`
	CorrectCount int        `db:"correct_count"`
	WrongCount   int        `db:"wrong_count"`
}

type MasteryCount struct {
	Level int `db:"mastery_level" json:"level"`
	Count int `db:"word_count" json:"count"`
}

type TopWrongWord struct {
	WordID        int64   `db:"word_id" json:"word_id"`
	SourceText    string  `db:"source_text" json:"source_text"`
	TargetText    string  `db:"target_text" json:"target_text"`
	WrongRate     float64 `db:"wrong_rate" json:"wrong_rate"`
	WrongCount    int     `db:"wrong_count" json:"wrong_count"`
	TotalAttempts int     `db:"total_attempts" json:"total_attempts"`
	MasteryLevel  int     `db:"mastery_level" json:"mastery_level"`
}
