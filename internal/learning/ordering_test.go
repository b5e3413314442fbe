package learning_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/learning"
	"github.com/vytor/vocabflash/internal/models"
)

func words(ids ...int64) []models.Word {
	out := make([]models.Word, len(ids))
	for i, id := range ids {
		out[i] = models.Word{ID: id}
	}
	return out
}

func ids(ws []models.Word) []int64 {
	out := make([]int64, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestOrderWords_Sequential(t *testing.T) {
	in := words(3, 1, 2)
	out := learning.OrderWords(in, models.Sequential, nil, seeded())
	assert.Equal(t, []int64{3, 1, 2}, ids(out))
}

func TestOrderWords_PersonalizedScoreDescTieByID(t *testing.T) {
	in := words(4, 3, 2, 1)
	scores := map[int64]float64{1: 10, 2: 70, 3: 70, 4: 30}
	out := learning.OrderWords(in, models.Personalized, scores, seeded())
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(out))
}

func TestOrderWords_PersonalizedMissingScoreIsNeutral(t *testing.T) {
	out := learning.OrderWords(words(1, 2, 3), models.Personalized, map[int64]float64{1: 40, 3: 60}, seeded())
	assert.Equal(t, []int64{3, 2, 1}, ids(out))
}

func TestOrderWords_RandomIsPermutation(t *testing.T) {
	in := words(1, 2, 3, 4, 5, 6, 7, 8)
	out := learning.OrderWords(in, models.Random, nil, seeded())
	assert.ElementsMatch(t, ids(in), ids(out))
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, ids(in), "input is not modified")

	again := learning.OrderWords(in, models.Random, nil, seeded())
	assert.Equal(t, ids(out), ids(again), "same seed gives same order")
}

func TestAnswerMatches(t *testing.T) {
	assert.True(t, learning.AnswerMatches(" Apple  ", "apple"))
	assert.True(t, learning.AnswerMatches("사과", " 사과"))
	assert.False(t, learning.AnswerMatches("laptop", "computer"))
	assert.False(t, learning.AnswerMatches("", "computer"))
}

func TestBuildChoices_Full(t *testing.T) {
	pool := []string{"책", "컴퓨터", "문", "창문"}
	choices := learning.BuildChoices("사과", pool, seeded())
	require.Len(t, choices, learning.ChoiceCount)
	assert.Contains(t, choices, "사과")

	seen := map[string]bool{}
	for _, c := range choices {
		assert.False(t, seen[c], "duplicate choice %q", c)
		seen[c] = true
		if c != "사과" {
			assert.Contains(t, pool, c)
		}
	}
}

func TestBuildChoices_Degrades(t *testing.T) {
	assert.Equal(t, []string{"사과"}, learning.BuildChoices("사과", []string{"책"}, seeded()))
	assert.Equal(t, []string{"사과"}, learning.BuildChoices("사과", []string{"책", "문"}, seeded()))
	assert.Equal(t, []string{"사과"}, learning.BuildChoices("사과", nil, seeded()))
}

func TestBuildChoices_IgnoresDuplicateTargets(t *testing.T) {
	pool := []string{"책", "책", "사과", "문", "문"}
	assert.Equal(t, []string{"사과"}, learning.BuildChoices("사과", pool, seeded()))

	pool = append(pool, "창문")
	choices := learning.BuildChoices("사과", pool, seeded())
	assert.ElementsMatch(t, []string{"사과", "책", "문", "창문"}, choices)
}

func TestBuildChoices_CorrectPositionVaries(t *testing.T) {
	rng := seeded()
	positions := map[int]bool{}
	for i := 0; i < 200; i++ {
		choices := learning.BuildChoices("x", []string{"a", "b", "c"}, rng)
		for p, c := range choices {
			if c == "x" {
				positions[p] = true
			}
		}
	}
	assert.Len(t, positions, learning.ChoiceCount)
}

func TestPickDirection(t *testing.T) {
	rng := seeded()
	assert.Equal(t, models.Forward, learning.PickDirection(models.ModeForward, rng))
	assert.Equal(t, models.Backward, learning.PickDirection(models.ModeBackward, rng))

	seen := map[models.Direction]int{}
	for i := 0; i < 100; i++ {
		seen[learning.PickDirection(models.ModeMixed, rng)]++
	}
	assert.Positive(t, seen[models.Forward])
	assert.Positive(t, seen[models.Backward])
}
