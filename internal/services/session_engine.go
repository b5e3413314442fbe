package services

import (
	"context"
	"time"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/learning"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

// StartOptions describes a flashcard run.
type StartOptions struct {
	Direction     models.Direction
	Ordering      models.Ordering
	FavoritesOnly bool
	// WordLimit truncates the queue when positive.
	WordLimit int
}

// SessionEngine drives one learner through a flashcard session. It is not
// safe for concurrent use.
type SessionEngine interface {
	Start(ctx context.Context, opts StartOptions) (int, error)
	Current() (*models.Card, error)
	Submit(ctx context.Context, answer string, responseTime float64) (*models.AnswerResult, error)
	Skip() error
	End(ctx context.Context) (*models.SessionSummary, error)
	Progress() (*models.Progress, error)
	HasNext() (bool, error)
	Active() bool
}

type activeSession struct {
	id        int64
	direction models.Direction
	queue     []models.Word
	position  int
	correct   int
	wrong     int
	startedAt time.Time
}

type sessionEngine struct {
	words    repository.WordSource
	stats    StatisticsStore
	sessions repository.SessionRepository
	opts     options

	session *activeSession
}

// NewSessionEngine creates a new SessionEngine
func NewSessionEngine(words repository.WordSource, stats StatisticsStore, sessions repository.SessionRepository, opts ...Option) SessionEngine {
	return &sessionEngine{words: words, stats: stats, sessions: sessions, opts: applyOptions(opts)}
}

func (e *sessionEngine) Active() bool {
	return e.session != nil
}

func (e *sessionEngine) Start(ctx context.Context, opts StartOptions) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("session")
	log.Debug("starting session: direction=%s, ordering=%s, favorites_only=%t, limit=%d",
		opts.Direction, opts.Ordering, opts.FavoritesOnly, opts.WordLimit)

	if e.session != nil {
		return 0, errors.ErrSessionAlreadyActive
	}
	if !opts.Direction.Valid() {
		return 0, errors.NewValidationError("direction", "must be forward or backward")
	}
	if !opts.Ordering.Valid() {
		return 0, errors.NewValidationError("ordering", "must be sequential, random or personalized")
	}

	var (
		words []models.Word
		err   error
	)
	filter := "all"
	if opts.FavoritesOnly {
		filter = "favorites"
		words, err = e.words.ListFavorites(ctx)
	} else {
		words, err = e.words.ListAll(ctx)
	}
	if err != nil {
		log.Error("failed to load words: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if len(words) == 0 {
		return 0, errors.NewNoWordsAvailableError(filter)
	}

	var scores map[int64]float64
	if opts.Ordering == models.Personalized {
		if scores, err = e.stats.Scores(ctx, words); err != nil {
			return 0, err
		}
	}
	queue := learning.OrderWords(words, opts.Ordering, scores, e.opts.rng)
	if opts.WordLimit > 0 && opts.WordLimit < len(queue) {
		queue = queue[:opts.WordLimit]
	}

	startedAt := e.opts.now()
	id, err := e.sessions.Create(ctx, models.StudySession{
		Type:       models.SessionFlashcard,
		Ordering:   opts.Ordering,
		StartedAt:  startedAt,
		TotalWords: len(queue),
	})
	if err != nil {
		log.Error("failed to create study session: %v", err)
		return 0, errors.NewInternalError(err)
	}

	e.session = &activeSession{
		id:        id,
		direction: opts.Direction,
		queue:     queue,
		startedAt: startedAt,
	}
	log.Info("session started: id=%d, words=%d", id, len(queue))
	return len(queue), nil
}

func (e *sessionEngine) guard() (*activeSession, error) {
	if e.session == nil {
		return nil, errors.ErrNoActiveSession
	}
	if e.session.position >= len(e.session.queue) {
		return nil, errors.ErrCompleted
	}
	return e.session, nil
}

func (e *sessionEngine) Current() (*models.Card, error) {
	s, err := e.guard()
	if err != nil {
		return nil, err
	}
	w := s.queue[s.position]
	return &models.Card{
		WordID:   w.ID,
		Prompt:   w.Prompt(s.direction),
		Position: s.position + 1,
		Total:    len(s.queue),
	}, nil
}

func (e *sessionEngine) Submit(ctx context.Context, answer string, responseTime float64) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	s, err := e.guard()
	if err != nil {
		return nil, err
	}
	w := s.queue[s.position]
	expected := w.Answer(s.direction)
	correct := learning.AnswerMatches(answer, expected)

	// Statistics must land before the card is consumed.
	if _, err := e.stats.RecordAnswer(ctx, w.ID, correct); err != nil {
		log.Error("failed to record answer: word_id=%d: %v", w.ID, err)
		return nil, err
	}

	if _, err := e.sessions.InsertHistory(ctx, models.LearningHistoryEntry{
		SessionID:    s.id,
		WordID:       w.ID,
		Direction:    s.direction,
		IsCorrect:    correct,
		ResponseTime: responseTime,
		UserAnswer:   answer,
		RecordedAt:   e.opts.now(),
	}); err != nil {
		log.Warn("failed to store learning history: %v", err)
	}

	if correct {
		s.correct++
	} else {
		s.wrong++
	}
	s.position++
	log.WithField("word_id", w.ID).Debug("answer recorded correct=%t", correct)

	return &models.AnswerResult{
		IsCorrect:     correct,
		CorrectAnswer: expected,
		UserAnswer:    answer,
	}, nil
}

func (e *sessionEngine) Skip() error {
	s, err := e.guard()
	if err != nil {
		return err
	}
	s.position++
	return nil
}

func (e *sessionEngine) End(ctx context.Context) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	s := e.session
	if s == nil {
		return nil, errors.ErrNoActiveSession
	}
	e.session = nil

	ended := e.opts.now()
	answered := s.correct + s.wrong
	summary := &models.SessionSummary{
		SessionID:      s.id,
		Total:          answered,
		Correct:        s.correct,
		Wrong:          s.wrong,
		Accuracy:       learning.Percent(s.correct, answered),
		ElapsedSeconds: learning.Round(ended.Sub(s.startedAt).Seconds(), 1),
	}

	err := e.sessions.Finish(ctx, models.StudySession{
		ID:           s.id,
		EndedAt:      &ended,
		TotalWords:   answered,
		CorrectCount: s.correct,
		WrongCount:   s.wrong,
		AccuracyRate: summary.Accuracy,
	})
	if err != nil {
		log.Error("failed to finish study session: id=%d: %v", s.id, err)
	} else {
		summary.Saved = true
	}

	log.Info("session ended: id=%d, answered=%d, correct=%d, accuracy=%.1f", s.id, answered, s.correct, summary.Accuracy)
	return summary, nil
}

func (e *sessionEngine) Progress() (*models.Progress, error) {
	s := e.session
	if s == nil {
		return nil, errors.ErrNoActiveSession
	}
	return &models.Progress{
		Position: s.position,
		Total:    len(s.queue),
		Percent:  learning.Percent(s.position, len(s.queue)),
	}, nil
}

func (e *sessionEngine) HasNext() (bool, error) {
	s := e.session
	if s == nil {
		return false, errors.ErrNoActiveSession
	}
	return s.position < len(s.queue), nil
}
