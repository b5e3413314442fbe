package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/models"
)

func TestStatisticsStore_RecordAnswer(t *testing.T) {
	f := newFixture(t)
	id := f.addWord("apple", "사과")

	st, err := f.store.RecordAnswer(f.ctx, id, true)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalAttempts)
	assert.Equal(t, 1, st.CorrectCount)
	assert.Equal(t, 1, st.ConsecutiveCorrect)
	require.NotNil(t, st.LastStudyDate)
	assert.True(t, f.now.Equal(*st.LastStudyDate))

	st, err = f.store.RecordAnswer(f.ctx, id, false)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalAttempts)
	assert.Equal(t, 1, st.WrongCount)
	assert.Equal(t, 0, st.ConsecutiveCorrect)
	assert.Equal(t, 50.0, st.WrongRate())

	stored := f.stats(id)
	assert.Equal(t, st.TotalAttempts, stored.TotalAttempts)
	assert.Equal(t, st.WrongCount, stored.WrongCount)
}

func TestStatisticsStore_RecordAnswerUnknownWord(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.RecordAnswer(f.ctx, 404, true)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestStatisticsStore_InvariantsOverManyAnswers(t *testing.T) {
	f := newFixture(t)
	id := f.addWord("book", "책")

	for i := 0; i < 40; i++ {
		st, err := f.store.RecordAnswer(f.ctx, id, i%7 != 0 && i%5 != 0)
		require.NoError(t, err)
		assert.Equal(t, st.TotalAttempts, st.CorrectCount+st.WrongCount)
		assert.GreaterOrEqual(t, st.MasteryLevel, 0)
		assert.LessOrEqual(t, st.MasteryLevel, models.MaxMasteryLevel)
	}
}

func TestStatisticsStore_StreakRaisesMasteryOnce(t *testing.T) {
	f := newFixture(t)
	id := f.addWord("door", "문")

	for i := 0; i < 2; i++ {
		_, err := f.store.RecordAnswer(f.ctx, id, true)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, f.stats(id).MasteryLevel)

	_, err := f.store.RecordAnswer(f.ctx, id, true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.stats(id).MasteryLevel)

	_, err = f.store.RecordAnswer(f.ctx, id, false)
	require.NoError(t, err)
	st := f.stats(id)
	assert.Equal(t, 0, st.ConsecutiveCorrect)
	assert.Equal(t, 1, st.MasteryLevel, "wrong rate 25% keeps the level")
}

func TestStatisticsStore_InitializeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	id := f.addWord("apple", "사과")

	require.NoError(t, f.store.Initialize(f.ctx, id))
	require.NoError(t, f.store.Initialize(f.ctx, id))
	assert.Equal(t, models.WordStatistics{WordID: id}, f.stats(id))
}

func TestStatisticsStore_Scores(t *testing.T) {
	f := newFixture(t)
	ids := f.addStandardWords()
	today := f.now
	f.setStats(ids[1], 0, 3, 0, &today)

	words, err := f.wordRepo.ListAll(f.ctx)
	require.NoError(t, err)
	scores, err := f.store.Scores(f.ctx, words)
	require.NoError(t, err)

	assert.Equal(t, 50.0, scores[ids[0]])
	assert.Equal(t, 63.0, scores[ids[1]])
	assert.Len(t, scores, 4)

	f.advance(48 * time.Hour)
	scores, err = f.store.Scores(f.ctx, words)
	require.NoError(t, err)
	assert.Equal(t, 63.6, scores[ids[1]])
}
