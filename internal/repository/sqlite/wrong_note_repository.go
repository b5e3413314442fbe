package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

type wrongNoteRepository struct {
	db *sql.DB
}

// NewWrongNoteRepository creates a new WrongNoteRepository implementation
func NewWrongNoteRepository(db *sql.DB) repository.WrongNoteRepository {
	return &wrongNoteRepository{db: db}
}

func (r *wrongNoteRepository) Add(ctx context.Context, wordID, examID int64) error {
	log := logger.FromContext(ctx).WithPrefix("wrong_note_repo")
	log.Debug("adding wrong note: word_id=%d, exam_id=%d", wordID, examID)

	ts := now()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO wrong_notes (word_id, first_exam_id, last_exam_id, wrong_count, resolved, created_at, updated_at)
VALUES (?, ?, ?, 1, 0, ?, ?)
ON CONFLICT(word_id) DO UPDATE SET
    last_exam_id = excluded.last_exam_id,
    wrong_count = wrong_notes.wrong_count + 1,
    resolved = 0,
    resolved_at = NULL,
    updated_at = excluded.updated_at
`, wordID, examID, examID, ts, ts)
	if err != nil {
		log.Error("failed to add wrong note: %v", err)
	}
	return err
}

func (r *wrongNoteRepository) Get(ctx context.Context, wordID int64) (*models.WrongNote, error) {
	log := logger.FromContext(ctx).WithPrefix("wrong_note_repo")

	var n models.WrongNote
	var resolvedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT word_id, first_exam_id, last_exam_id, wrong_count, resolved, created_at, updated_at, resolved_at
FROM wrong_notes
WHERE word_id = ?
`, wordID).Scan(&n.WordID, &n.FirstExamID, &n.LastExamID, &n.WrongCount, &n.Resolved, &n.CreatedAt, &n.UpdatedAt, &resolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get wrong note: %v", err)
		return nil, err
	}
	n.ResolvedAt = nullTimePtr(resolvedAt)
	return &n, nil
}

func (r *wrongNoteRepository) ListUnresolved(ctx context.Context) ([]models.WrongNoteWithWord, error) {
	log := logger.FromContext(ctx).WithPrefix("wrong_note_repo")
	log.Debug("listing unresolved wrong notes")

	rows, err := r.db.QueryContext(ctx, `
SELECT
    n.word_id, n.first_exam_id, n.last_exam_id, n.wrong_count, n.resolved, n.created_at, n.updated_at,
    w.source_text, w.target_text,
    COALESCE(s.mastery_level, 0),
    CASE WHEN COALESCE(s.total_attempts, 0) = 0 THEN 0.0
         ELSE CAST(s.wrong_count AS REAL) / s.total_attempts * 100 END AS wrong_rate
FROM wrong_notes n
JOIN words w ON w.id = n.word_id
LEFT JOIN word_statistics s ON s.word_id = n.word_id
WHERE n.resolved = 0
ORDER BY n.wrong_count DESC, n.updated_at DESC, n.word_id ASC
`)
	if err != nil {
		log.Error("failed to list wrong notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var notes []models.WrongNoteWithWord
	for rows.Next() {
		var n models.WrongNoteWithWord
		if err := rows.Scan(&n.WordID, &n.FirstExamID, &n.LastExamID, &n.WrongCount, &n.Resolved, &n.CreatedAt, &n.UpdatedAt,
			&n.SourceText, &n.TargetText, &n.MasteryLevel, &n.WrongRate); err != nil {
			log.Error("failed to scan wrong note row: %v", err)
			return nil, err
		}
		notes = append(notes, n)
	}
	log.Debug("found %d unresolved wrong notes", len(notes))
	return notes, rows.Err()
}

func (r *wrongNoteRepository) Resolve(ctx context.Context, wordID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("wrong_note_repo")
	log.Debug("resolving wrong note: word_id=%d", wordID)

	ts := now()
	res, err := r.db.ExecContext(ctx, `
UPDATE wrong_notes SET resolved = 1, resolved_at = ?, updated_at = ?
WHERE word_id = ? AND resolved = 0
`, ts, ts, wordID)
	if err != nil {
		log.Error("failed to resolve wrong note: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
