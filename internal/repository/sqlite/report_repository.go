package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: sqlx.NewDb(db, "sqlite3")}
}

func (r *reportRepository) SessionsBetween(ctx context.Context, from, to time.Time) ([]models.SessionRow, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("loading sessions between %s and %s", from.Format(time.RFC3339), to.Format(time.RFC3339))

	var rows []models.SessionRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT id AS session_id, session_type, started_at, ended_at, total_words, correct_count, wrong_count
FROM study_sessions
WHERE started_at >= ? AND started_at < ? AND ended_at IS NOT NULL
ORDER BY started_at ASC, id ASC
`, from.UTC(), to.UTC())
	if err != nil {
		log.Error("failed to load sessions: %v", err)
		return nil, err
	}
	log.Debug("loaded %d sessions", len(rows))
	return rows, nil
}

func (r *reportRepository) MasteryCounts(ctx context.Context) ([]models.MasteryCount, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("loading mastery distribution")

	var counts []models.MasteryCount
	err := r.db.SelectContext(ctx, &counts, `
SELECT COALESCE(s.mastery_level, 0) AS mastery_level, COUNT(*) AS word_count
FROM words w
LEFT JOIN word_statistics s ON s.word_id = w.id
GROUP BY COALESCE(s.mastery_level, 0)
ORDER BY mastery_level ASC
`)
	if err != nil {
		log.Error("failed to load mastery distribution: %v", err)
		return nil, err
	}
	return counts, nil
}

func (r *reportRepository) TopWrong(ctx context.Context, limit int) ([]models.TopWrongWord, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("loading top wrong words: limit=%d", limit)

	query := sqlBuilder.Select(
		"w.id AS word_id", "w.source_text", "w.target_text",
		"CAST(s.wrong_count AS REAL) / s.total_attempts * 100 AS wrong_rate",
		"s.wrong_count", "s.total_attempts", "s.mastery_level",
	).
		From("word_statistics s").
		Join("words w ON w.id = s.word_id").
		Where(squirrel.Gt{"s.total_attempts": 0}).
		Where(squirrel.Gt{"s.wrong_count": 0}).
		OrderBy("wrong_rate DESC", "s.wrong_count DESC", "w.id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var words []models.TopWrongWord
	if err := r.db.SelectContext(ctx, &words, stmt, args...); err != nil {
		log.Error("failed to load top wrong words: %v", err)
		return nil, err
	}
	return words, nil
}
