package models

import "time"

// Direction selects which side of a word pair is shown as the prompt.
type Direction string

const (
	// Forward prompts with the source text and expects the target text.
	Forward Direction = "forward"
	// Backward prompts with the target text and expects the source text.
	Backward Direction = "backward"
)

func (d Direction) Valid() bool {
	return d == Forward || d == Backward
}

// Ordering decides how a word queue is built.
type Ordering string

const (
	Sequential   Ordering = "sequential"
	Random       Ordering = "random"
	Personalized Ordering = "personalized"
)

func (o Ordering) Valid() bool {
	switch o {
	case Sequential, Random, Personalized:
		return true
	}
	return false
}

type Word struct {
	ID         int64     `json:"id"`
	SourceText string    `json:"source_text"`
	TargetText string    `json:"target_text"`
	Memo       string    `json:"memo"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Prompt returns the text shown to the learner for the given direction.
func (w Word) Prompt(d Direction) string {
	if d == Backward {
		return w.TargetText
	}
	return w.SourceText
}

// Answer returns the text expected from the learner for the given direction.
func (w Word) Answer(d Direction) string {
	if d == Backward {
		return w.SourceText
	}
	return w.TargetText
}

type WordFilter struct {
	Query         string
	FavoritesOnly bool
	Limit         int
	Offset        int
	OrderBy       string
	OrderDir      string
}

// WordWithStats joins a word with its statistics row. Stats is nil for a
// word that has never been initialized.
type WordWithStats struct {
	Word
	Stats *WordStatistics `json:"stats"`
}

// ImportResult reports the outcome of a bulk word import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}
