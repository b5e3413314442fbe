package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/learning"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

// StatisticsStore owns per-word learning statistics
type StatisticsStore interface {
	Get(ctx context.Context, wordID int64) (*models.WordStatistics, error)
	GetMany(ctx context.Context, wordIDs []int64) (map[int64]models.WordStatistics, error)
	Initialize(ctx context.Context, wordID int64) error
	RecordAnswer(ctx context.Context, wordID int64, isCorrect bool) (*models.WordStatistics, error)
	// Scores returns the current priority score of every given word.
	Scores(ctx context.Context, words []models.Word) (map[int64]float64, error)
}

type statisticsStore struct {
	mu    sync.Mutex
	words repository.WordSource
	stats repository.StatisticsRepository
	opts  options
}

// NewStatisticsStore creates a new StatisticsStore
func NewStatisticsStore(words repository.WordSource, stats repository.StatisticsRepository, opts ...Option) StatisticsStore {
	return &statisticsStore{words: words, stats: stats, opts: applyOptions(opts)}
}

func (s *statisticsStore) Get(ctx context.Context, wordID int64) (*models.WordStatistics, error) {
	stats, err := s.stats.Get(ctx, wordID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get statistics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statisticsStore) GetMany(ctx context.Context, wordIDs []int64) (map[int64]models.WordStatistics, error) {
	stats, err := s.stats.GetMany(ctx, wordIDs)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get statistics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statisticsStore) Initialize(ctx context.Context, wordID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stats.Initialize(ctx, wordID); err != nil {
		logger.FromContext(ctx).Error("failed to initialize statistics: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *statisticsStore) RecordAnswer(ctx context.Context, wordID int64, isCorrect bool) (*models.WordStatistics, error) {
	log := logger.FromContext(ctx).WithPrefix("statistics")
	log.Debug("recording answer: word_id=%d, correct=%t", wordID, isCorrect)

	word, err := s.words.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to look up word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", wordID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	studied := s.opts.now()
	updated, err := s.stats.Update(ctx, wordID, func(st *models.WordStatistics) {
		learning.ApplyAnswer(st, isCorrect, s.opts.upThreshold)
		st.LastStudyDate = &studied
	})
	if err != nil {
		log.Error("failed to update statistics: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Debug("statistics recorded: word_id=%d, attempts=%d, mastery=%d, streak=%d",
		wordID, updated.TotalAttempts, updated.MasteryLevel, updated.ConsecutiveCorrect)
	return updated, nil
}

func (s *statisticsStore) Scores(ctx context.Context, words []models.Word) (map[int64]float64, error) {
	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	stats, err := s.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return scoreAll(ids, stats, s.opts.now(), s.opts.weights), nil
}

func scoreAll(ids []int64, stats map[int64]models.WordStatistics, now time.Time, w learning.Weights) map[int64]float64 {
	scores := make(map[int64]float64, len(ids))
	for _, id := range ids {
		if st, ok := stats[id]; ok {
			scores[id] = learning.Score(&st, now, w)
		} else {
			scores[id] = learning.Score(nil, now, w)
		}
	}
	return scores
}
