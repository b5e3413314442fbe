// Package learning holds the pure scheduling rules: word priority scoring,
// mastery adjustment, study ordering and multiple-choice generation.
package learning

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/vocabflash/internal/models"
)

// NeutralScore is the priority of a word that has never been attempted.
const NeutralScore = 50.0

const (
	recencyCapDays   = 30
	neverStudiedDays = 999
	wrongVolumeCap   = 10
)

// Weights controls how much each signal contributes to a word's score.
type Weights struct {
	WrongRate   float64 `json:"wrong_rate"`
	Recency     float64 `json:"recency"`
	MasteryGap  float64 `json:"mastery_gap"`
	WrongVolume float64 `json:"wrong_volume"`
}

// DefaultWeights returns the stock weighting.
func DefaultWeights() Weights {
	return Weights{WrongRate: 0.4, Recency: 0.3, MasteryGap: 0.2, WrongVolume: 0.1}
}

// Validate checks that all weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"wrong_rate":   w.WrongRate,
		"recency":      w.Recency,
		"mastery_gap":  w.MasteryGap,
		"wrong_volume": w.WrongVolume,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", name, v)
		}
	}
	sum := w.WrongRate + w.Recency + w.MasteryGap + w.WrongVolume
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Score returns the study priority of a word; higher is studied sooner.
// A nil or unattempted record scores NeutralScore.
func Score(stats *models.WordStatistics, now time.Time, w Weights) float64 {
	if stats == nil || stats.TotalAttempts == 0 {
		return NeutralScore
	}

	days := float64(neverStudiedDays)
	if stats.LastStudyDate != nil {
		days = float64(DaysBetween(*stats.LastStudyDate, now))
	}

	score := stats.WrongRate()*w.WrongRate +
		math.Min(days, recencyCapDays)*w.Recency +
		float64(models.MaxMasteryLevel-stats.MasteryLevel)*20*w.MasteryGap +
		float64(min(stats.WrongCount, wrongVolumeCap))*10*w.WrongVolume

	return Round(score, 2)
}

// DaysBetween is the absolute number of whole days between a and b.
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// Percent returns part/whole*100 rounded to one decimal, 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return Round(float64(part)/float64(whole)*100, 1)
}
