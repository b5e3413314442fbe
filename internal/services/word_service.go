package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

// WordService handles the word catalogue
type WordService interface {
	List(ctx context.Context, filter models.WordFilter) ([]models.WordWithStats, int, error)
	Get(ctx context.Context, id int64) (*models.WordWithStats, error)
	Create(ctx context.Context, word models.Word) (*models.Word, error)
	Update(ctx context.Context, word models.Word) (*models.Word, error)
	Delete(ctx context.Context, id int64) error
	SetFavorite(ctx context.Context, id int64, favorite bool) error
	Import(ctx context.Context, words []models.Word) (*models.ImportResult, error)
	Export(ctx context.Context) ([]models.Word, error)
}

type wordService struct {
	repo  repository.WordRepository
	stats StatisticsStore
}

// NewWordService creates a new WordService
func NewWordService(repo repository.WordRepository, stats StatisticsStore) WordService {
	return &wordService{repo: repo, stats: stats}
}

func normalizeWord(w models.Word) (models.Word, error) {
	w.SourceText = strings.TrimSpace(w.SourceText)
	w.TargetText = strings.TrimSpace(w.TargetText)
	w.Memo = strings.TrimSpace(w.Memo)
	if w.SourceText == "" {
		return w, errors.NewValidationError("source_text", "cannot be empty")
	}
	if w.TargetText == "" {
		return w, errors.NewValidationError("target_text", "cannot be empty")
	}
	return w, nil
}

func (s *wordService) List(ctx context.Context, filter models.WordFilter) ([]models.WordWithStats, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing words: query=%q, limit=%d, offset=%d", filter.Query, filter.Limit, filter.Offset)

	words, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count words: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	stats, err := s.stats.GetMany(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.WordWithStats, len(words))
	for i, w := range words {
		out[i] = models.WordWithStats{Word: w}
		if st, ok := stats[w.ID]; ok {
			out[i].Stats = &st
		}
	}
	return out, total, nil
}

func (s *wordService) Get(ctx context.Context, id int64) (*models.WordWithStats, error) {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if w == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	stats, err := s.stats.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.WordWithStats{Word: *w, Stats: stats}, nil
}

func (s *wordService) Create(ctx context.Context, word models.Word) (*models.Word, error) {
	log := logger.FromContext(ctx)

	word, err := normalizeWord(word)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByText(ctx, word.SourceText, word.TargetText)
	if err != nil {
		log.Error("failed to check for duplicate word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewValidationError("word", fmt.Sprintf("%q → %q already exists", word.SourceText, word.TargetText))
	}

	id, err := s.repo.Insert(ctx, word)
	if err != nil {
		log.Error("failed to create word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.stats.Initialize(ctx, id); err != nil {
		log.Warn("failed to initialize statistics for word %d: %v", id, err)
	}

	created, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error("failed to reload word %d: %v", id, err)
		return nil, errors.NewInternalError(fmt.Errorf("reload word %d: %w", id, err))
	}
	if created == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	log.Info("word created: id=%d", id)
	return created, nil
}

func (s *wordService) Update(ctx context.Context, word models.Word) (*models.Word, error) {
	log := logger.FromContext(ctx)

	current, err := s.repo.Get(ctx, word.ID)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if current == nil {
		return nil, errors.NewNotFoundError("word", word.ID)
	}
	if word, err = normalizeWord(word); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByText(ctx, word.SourceText, word.TargetText)
	if err != nil {
		log.Error("failed to check for duplicate word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil && existing.ID != word.ID {
		return nil, errors.NewValidationError("word", fmt.Sprintf("%q → %q already exists", word.SourceText, word.TargetText))
	}

	if err := s.repo.Update(ctx, word); err != nil {
		log.Error("failed to update word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	updated, err := s.repo.Get(ctx, word.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return updated, nil
}

func (s *wordService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	w, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return errors.NewInternalError(err)
	}
	if w == nil {
		return errors.NewNotFoundError("word", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete word: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("word deleted: id=%d", id)
	return nil
}

func (s *wordService) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get word: %v", err)
		return errors.NewInternalError(err)
	}
	if w == nil {
		return errors.NewNotFoundError("word", id)
	}
	if err := s.repo.SetFavorite(ctx, id, favorite); err != nil {
		logger.FromContext(ctx).Error("failed to set favorite: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// Import adds every valid word, skipping duplicates of existing words and
// of earlier rows in the same batch.
func (s *wordService) Import(ctx context.Context, words []models.Word) (*models.ImportResult, error) {
	log := logger.FromContext(ctx).WithPrefix("import")
	log.Info("importing %d words", len(words))

	result := &models.ImportResult{Errors: []string{}}
	for i, w := range words {
		row := i + 1
		w, err := normalizeWord(w)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}
		existing, err := s.repo.FindByText(ctx, w.SourceText, w.TargetText)
		if err != nil {
			log.Error("failed to check for duplicate word: %v", err)
			return result, errors.NewInternalError(err)
		}
		if existing != nil {
			result.Skipped++
			continue
		}
		id, err := s.repo.Insert(ctx, w)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}
		if err := s.stats.Initialize(ctx, id); err != nil {
			log.Warn("failed to initialize statistics for word %d: %v", id, err)
		}
		result.Created++
	}

	log.Info("import finished: created=%d, skipped=%d, errors=%d", result.Created, result.Skipped, len(result.Errors))
	return result, nil
}

func (s *wordService) Export(ctx context.Context) ([]models.Word, error) {
	words, err := s.repo.ListAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to export words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return words, nil
}
