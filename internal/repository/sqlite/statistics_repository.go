package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

const statisticsColumns = "word_id, total_attempts, correct_count, wrong_count, mastery_level, consecutive_correct, last_study_date"

type statisticsRepository struct {
	db *sql.DB
}

// NewStatisticsRepository creates a new StatisticsRepository implementation
func NewStatisticsRepository(db *sql.DB) repository.StatisticsRepository {
	return &statisticsRepository{db: db}
}

func scanStatistics(row rowScanner) (models.WordStatistics, error) {
	var s models.WordStatistics
	var last sql.NullTime
	err := row.Scan(&s.WordID, &s.TotalAttempts, &s.CorrectCount, &s.WrongCount, &s.MasteryLevel, &s.ConsecutiveCorrect, &last)
	s.LastStudyDate = nullTimePtr(last)
	return s, err
}

func (r *statisticsRepository) Get(ctx context.Context, wordID int64) (*models.WordStatistics, error) {
	log := logger.FromContext(ctx).WithPrefix("statistics_repo")
	log.Debug("getting statistics: word_id=%d", wordID)

	s, err := scanStatistics(r.db.QueryRowContext(ctx,
		`SELECT `+statisticsColumns+` FROM word_statistics WHERE word_id = ?`, wordID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get statistics: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statisticsRepository) GetMany(ctx context.Context, wordIDs []int64) (map[int64]models.WordStatistics, error) {
	log := logger.FromContext(ctx).WithPrefix("statistics_repo")
	log.Debug("getting statistics for %d words", len(wordIDs))

	out := make(map[int64]models.WordStatistics, len(wordIDs))
	if len(wordIDs) == 0 {
		return out, nil
	}

	stmt, args, err := sqlBuilder.Select(statisticsColumns).From("word_statistics").
		Where(squirrel.Eq{"word_id": wordIDs}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to query statistics: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanStatistics(rows)
		if err != nil {
			log.Error("failed to scan statistics row: %v", err)
			return nil, err
		}
		out[s.WordID] = s
	}
	return out, rows.Err()
}

func (r *statisticsRepository) Initialize(ctx context.Context, wordID int64) error {
	log := logger.FromContext(ctx).WithPrefix("statistics_repo")
	log.Debug("initializing statistics: word_id=%d", wordID)

	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO word_statistics (word_id) VALUES (?)`, wordID)
	if err != nil {
		log.Error("failed to initialize statistics: %v", err)
	}
	return err
}

func (r *statisticsRepository) Update(ctx context.Context, wordID int64, fn func(*models.WordStatistics)) (*models.WordStatistics, error) {
	log := logger.FromContext(ctx).WithPrefix("statistics_repo")
	log.Debug("updating statistics: word_id=%d", wordID)

	var updated models.WordStatistics
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		s, err := scanStatistics(tx.QueryRowContext(ctx,
			`SELECT `+statisticsColumns+` FROM word_statistics WHERE word_id = ?`, wordID))
		if errors.Is(err, sql.ErrNoRows) {
			s = models.WordStatistics{WordID: wordID}
		} else if err != nil {
			return err
		}

		fn(&s)
		s.WordID = wordID

		_, err = tx.ExecContext(ctx, `
INSERT INTO word_statistics (word_id, total_attempts, correct_count, wrong_count, mastery_level, consecutive_correct, last_study_date)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(word_id) DO UPDATE SET
    total_attempts = excluded.total_attempts,
    correct_count = excluded.correct_count,
    wrong_count = excluded.wrong_count,
    mastery_level = excluded.mastery_level,
    consecutive_correct = excluded.consecutive_correct,
    last_study_date = excluded.last_study_date
`, s.WordID, s.TotalAttempts, s.CorrectCount, s.WrongCount, s.MasteryLevel, s.ConsecutiveCorrect, utcPtr(s.LastStudyDate))
		if err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		log.Error("failed to update statistics: %v", err)
		return nil, err
	}
	log.Debug("statistics updated: word_id=%d, attempts=%d, mastery=%d", wordID, updated.TotalAttempts, updated.MasteryLevel)
	return &updated, nil
}
