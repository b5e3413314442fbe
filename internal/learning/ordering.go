package learning

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/vytor/vocabflash/internal/models"
)

// ChoiceCount is the size of a full multiple-choice set.
const ChoiceCount = 4

// OrderWords returns a new slice ordered for study. scores is only read for
// personalized ordering; words missing from it get NeutralScore.
func OrderWords(words []models.Word, ordering models.Ordering, scores map[int64]float64, rng *rand.Rand) []models.Word {
	out := slices.Clone(words)
	switch ordering {
	case models.Random:
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	case models.Personalized:
		scoreOf := func(id int64) float64 {
			if s, ok := scores[id]; ok {
				return s
			}
			return NeutralScore
		}
		slices.SortStableFunc(out, func(a, b models.Word) int {
			if c := cmp.Compare(scoreOf(b.ID), scoreOf(a.ID)); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return out
}

// AnswerMatches compares answers ignoring case and surrounding whitespace.
func AnswerMatches(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}

// BuildChoices samples three distractors from pool without replacement and
// shuffles them with the correct answer. Fewer than three distinct
// distractors yields only the correct answer.
func BuildChoices(correct string, pool []string, rng *rand.Rand) []string {
	pool = distinctExcept(pool, correct)
	need := ChoiceCount - 1
	if len(pool) < need {
		return []string{correct}
	}
	choices := make([]string, 0, ChoiceCount)
	choices = append(choices, correct)
	for _, i := range rng.Perm(len(pool))[:need] {
		choices = append(choices, pool[i])
	}
	rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices
}

// distinctExcept drops duplicates and any entry equal to skip, keeping the
// first occurrence order.
func distinctExcept(pool []string, skip string) []string {
	seen := map[string]bool{skip: true}
	out := make([]string, 0, len(pool))
	for _, p := range pool {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// PickDirection resolves a question mode into a concrete direction,
// flipping a fair coin for mixed mode.
func PickDirection(mode models.QuestionMode, rng *rand.Rand) models.Direction {
	switch mode {
	case models.ModeBackward:
		return models.Backward
	case models.ModeMixed:
		if rng.IntN(2) == 0 {
			return models.Forward
		}
		return models.Backward
	default:
		return models.Forward
	}
}
