package models

import "time"

type SessionType string

const (
	SessionFlashcard SessionType = "flashcard"
	SessionExam      SessionType = "exam"
)

type StudySession struct {
	ID           int64       `json:"id"`
	Type         SessionType `json:"type"`
	Ordering     Ordering    `json:"ordering"`
	StartedAt    time.Time   `json:"started_at"`
	EndedAt      *time.Time  `json:"ended_at"`
	TotalWords   int         `json:"total_words"`
	CorrectCount int         `json:"correct_count"`
	WrongCount   int         `json:"wrong_count"`
	AccuracyRate float64     `json:"accuracy_rate"`
}

type LearningHistoryEntry struct {
	ID           int64     `json:"id"`
	SessionID    int64     `json:"session_id"`
	WordID       int64     `json:"word_id"`
	Direction    Direction `json:"direction"`
	IsCorrect    bool      `json:"is_correct"`
	ResponseTime float64   `json:"response_time"`
	UserAnswer   string    `json:"user_answer"`
	RecordedAt   time.Time `json:"recorded_at"`
}

type Card struct {
	WordID   int64  `json:"word_id"`
	Prompt   string `json:"prompt"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	UserAnswer    string `json:"user_answer"`
}

type Progress struct {
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

type SessionSummary struct {
	SessionID      int64   `json:"session_id"`
	Total          int     `json:"total_words"`
	Correct        int     `json:"correct_count"`
	Wrong          int     `json:"wrong_count"`
	Accuracy       float64 `json:"accuracy"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Saved          bool    `json:"saved"`
}
