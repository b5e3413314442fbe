package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/vocabflash/internal/logger"
)

func newTestLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	fixed := time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithCaller(false),
		logger.WithClock(func() time.Time { return fixed }),
	)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{" error ", logger.ERROR},
		{"bogus", logger.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.WARN)

	log.Info("hidden")
	log.Warn("shown: %d", 7)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown: 7")
}

func TestLogger_FormatsPrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.DEBUG).
		WithPrefix("session").
		WithFields(map[string]any{"word_id": 3, "correct": true})

	log.Info("answer recorded")

	assert.Equal(t,
		"2025-10-20 09:30:00.000 INFO  [session] answer recorded correct=true word_id=3\n",
		buf.String())
}

func TestLogger_DerivedLoggersDoNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, logger.DEBUG)
	_ = base.WithField("exam_id", 9)

	base.Info("plain")

	assert.NotContains(t, buf.String(), "exam_id")
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.DEBUG)

	log.WithError(errors.New("boom")).Error("write failed")
	log.WithError(nil).Info("fine")

	assert.Contains(t, buf.String(), "write failed error=boom")
	assert.Contains(t, buf.String(), "fine\n")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.DEBUG).WithField("request_id", "abc")

	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
