package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/errors"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", errors.ErrNoActiveSession)

	assert.True(t, stderrors.Is(wrapped, errors.ErrNoActiveSession))
	assert.False(t, stderrors.Is(wrapped, errors.ErrNoActiveExam))
}

func TestNewNotFoundError_MatchesSentinel(t *testing.T) {
	err := errors.NewNotFoundError("word", 42)

	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Error(), "word not found: 42")
}

func TestNewInsufficientWordsError_CarriesDeficit(t *testing.T) {
	err := errors.NewInsufficientWordsError(10, 4)

	assert.True(t, stderrors.Is(err, errors.ErrInsufficientWords))
	assert.Equal(t, 6, err.Details["deficit"])
	assert.Equal(t, 10, err.Details["needed"])
	assert.Equal(t, 4, err.Details["available"])
}

func TestAsAppError(t *testing.T) {
	t.Run("passes app errors through", func(t *testing.T) {
		got := errors.AsAppError(fmt.Errorf("ctx: %w", errors.ErrCompleted))
		require.NotNil(t, got)
		assert.Equal(t, errors.ErrCodeCompleted, got.Code)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		cause := stderrors.New("disk on fire")
		got := errors.AsAppError(cause)
		assert.Equal(t, errors.ErrCodeInternal, got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.ErrorIs(t, got, cause)
	})
}
