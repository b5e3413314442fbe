package models

import "time"

type ExamType string

const (
	ShortAnswer    ExamType = "short_answer"
	MultipleChoice ExamType = "multiple_choice"
)

func (t ExamType) Valid() bool {
	return t == ShortAnswer || t == MultipleChoice
}

type QuestionMode string

const (
	ModeForward  QuestionMode = "forward"
	ModeBackward QuestionMode = "backward"
	ModeMixed    QuestionMode = "mixed"
)

func (m QuestionMode) Valid() bool {
	switch m {
	case ModeForward, ModeBackward, ModeMixed:
		return true
	}
	return false
}

type Exam struct {
	ID             int64        `json:"id"`
	Type           ExamType     `json:"exam_type"`
	Mode           QuestionMode `json:"question_mode"`
	TotalQuestions int          `json:"total_questions"`
	TimeLimit      *int         `json:"time_limit"`
	CorrectCount   int          `json:"correct_count"`
	WrongCount     int          `json:"wrong_count"`
	Score          float64      `json:"score"`
	TimeTaken      float64      `json:"time_taken"`
	CreatedAt      time.Time    `json:"created_at"`
	FinishedAt     *time.Time   `json:"finished_at"`
}

type ExamQuestion struct {
	ID             int64     `json:"id"`
	ExamID         int64     `json:"exam_id"`
	WordID         int64     `json:"word_id"`
	QuestionNumber int       `json:"question_number"`
	Direction      Direction `json:"direction"`
	PromptText     string    `json:"prompt_text"`
	CorrectAnswer  string    `json:"correct_answer"`
	UserAnswer     *string   `json:"user_answer"`
	IsCorrect      bool      `json:"is_correct"`
	ResponseTime   float64   `json:"response_time"`
	Choices        []string  `json:"choices,omitempty"`
}

// Question is the learner-facing view of the current exam question.
type Question struct {
	QuestionNumber int      `json:"question_number"`
	Prompt         string   `json:"prompt"`
	Choices        []string `json:"choices"`
	Answer         *string  `json:"answer"`
	Position       int      `json:"position"`
	Total          int      `json:"total"`
}

type ExamResult struct {
	ExamID    int64   `json:"exam_id"`
	Total     int     `json:"total"`
	Correct   int     `json:"correct"`
	Wrong     int     `json:"wrong"`
	Score     float64 `json:"score"`
	TimeTaken float64 `json:"time_taken"`
	// FailedWordIDs lists words whose statistics could not be updated.
	FailedWordIDs []int64 `json:"failed_word_ids"`
	Saved         bool    `json:"saved"`
}

type ExamDetail struct {
	Exam
	Questions       []ExamQuestion `json:"questions"`
	AvgResponseTime float64        `json:"avg_response_time"`
	MinResponseTime float64        `json:"min_response_time"`
	MaxResponseTime float64        `json:"max_response_time"`
}

type WrongNote struct {
	WordID      int64      `json:"word_id"`
	FirstExamID int64      `json:"first_exam_id"`
	LastExamID  int64      `json:"last_exam_id"`
	WrongCount  int        `json:"wrong_count"`
	Resolved    bool       `json:"resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

type WrongNoteWithWord struct {
	WrongNote
	SourceText   string  `json:"source_text"`
	TargetText   string  `json:"target_text"`
	MasteryLevel int     `json:"mastery_level"`
	WrongRate    float64 `json:"wrong_rate"`
}
