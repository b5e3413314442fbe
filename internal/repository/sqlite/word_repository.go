package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

const wordColumns = "id, source_text, target_text, memo, is_favorite, created_at, updated_at"

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (models.Word, error) {
	var w models.Word
	err := row.Scan(&w.ID, &w.SourceText, &w.TargetText, &w.Memo, &w.IsFavorite, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting word: id=%d", id)

	w, err := scanWord(r.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("word not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) FindByText(ctx context.Context, source, target string) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	w, err := scanWord(r.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE source_text = ? AND target_text = ?`, source, target))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to find word by text: %v", err)
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) ListAll(ctx context.Context) ([]models.Word, error) {
	return r.query(ctx, sqlBuilder.Select(wordColumns).From("words").OrderBy("id ASC"))
}

func (r *wordRepository) ListFavorites(ctx context.Context) ([]models.Word, error) {
	return r.query(ctx, sqlBuilder.Select(wordColumns).From("words").
		Where(squirrel.Eq{"is_favorite": true}).OrderBy("id ASC"))
}

func applyWordFilter(q squirrel.SelectBuilder, filter models.WordFilter) squirrel.SelectBuilder {
	if filter.FavoritesOnly {
		q = q.Where(squirrel.Eq{"is_favorite": true})
	}
	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + s + "%"
		q = q.Where(squirrel.Or{
			squirrel.Like{"source_text": like},
			squirrel.Like{"target_text": like},
			squirrel.Like{"memo": like},
		})
	}
	return q
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words: query=%q, favorites_only=%t", filter.Query, filter.FavoritesOnly)

	query := applyWordFilter(sqlBuilder.Select(wordColumns).From("words"), filter)

	// Safe ORDER BY with validation
	orderBy := "id"
	switch filter.OrderBy {
	case "source_text", "target_text", "created_at", "updated_at":
		orderBy = filter.OrderBy
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "DESC") {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)
	if orderBy != "id" {
		query = query.OrderBy("id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	return r.query(ctx, query)
}

func (r *wordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	stmt, args, err := applyWordFilter(sqlBuilder.Select("COUNT(*)").From("words"), filter).ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		log.Error("failed to count words: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *wordRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	stmt, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: source=%q", w.SourceText)

	ts := now()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO words (source_text, target_text, memo, is_favorite, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`, w.SourceText, w.TargetText, w.Memo, w.IsFavorite, ts, ts)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get word id: %v", err)
		return 0, err
	}
	log.Debug("word inserted: id=%d", id)
	return id, nil
}

func (r *wordRepository) Update(ctx context.Context, w models.Word) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("updating word: id=%d", w.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE words
SET source_text = ?, target_text = ?, memo = ?, is_favorite = ?, updated_at = ?
WHERE id = ?
`, w.SourceText, w.TargetText, w.Memo, w.IsFavorite, now(), w.ID)
	if err != nil {
		log.Error("failed to update word: %v", err)
	}
	return err
}

func (r *wordRepository) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("setting favorite: id=%d, favorite=%t", id, favorite)

	_, err := r.db.ExecContext(ctx, `UPDATE words SET is_favorite = ?, updated_at = ? WHERE id = ?`, favorite, now(), id)
	if err != nil {
		log.Error("failed to set favorite: %v", err)
	}
	return err
}

func (r *wordRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("deleting word: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete word: %v", err)
	}
	return err
}
