package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s models.StudySession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating study session: type=%s, ordering=%s, total=%d", s.Type, s.Ordering, s.TotalWords)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (session_type, ordering, started_at, total_words)
VALUES (?, ?, ?, ?)
`, s.Type, s.Ordering, s.StartedAt.UTC(), s.TotalWords)
	if err != nil {
		log.Error("failed to create study session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("study session created: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting study session: id=%d", id)

	var s models.StudySession
	var ended sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, session_type, ordering, started_at, ended_at, total_words, correct_count, wrong_count, accuracy_rate
FROM study_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.Type, &s.Ordering, &s.StartedAt, &ended, &s.TotalWords, &s.CorrectCount, &s.WrongCount, &s.AccuracyRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get study session: %v", err)
		return nil, err
	}
	s.EndedAt = nullTimePtr(ended)
	return &s, nil
}

func (r *sessionRepository) Finish(ctx context.Context, s models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("finishing study session: id=%d, total=%d, correct=%d", s.ID, s.TotalWords, s.CorrectCount)

	res, err := r.db.ExecContext(ctx, `
UPDATE study_sessions
SET ended_at = ?, total_words = ?, correct_count = ?, wrong_count = ?, accuracy_rate = ?
WHERE id = ?
`, utcPtr(s.EndedAt), s.TotalWords, s.CorrectCount, s.WrongCount, s.AccuracyRate, s.ID)
	if err != nil {
		log.Error("failed to finish study session: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) InsertHistory(ctx context.Context, e models.LearningHistoryEntry) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting history: session_id=%d, word_id=%d, correct=%t", e.SessionID, e.WordID, e.IsCorrect)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO learning_history (session_id, word_id, direction, is_correct, response_time, user_answer, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, e.SessionID, e.WordID, e.Direction, e.IsCorrect, e.ResponseTime, e.UserAnswer, e.RecordedAt.UTC())
	if err != nil {
		log.Error("failed to insert history: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sessionRepository) HistoryForSession(ctx context.Context, sessionID int64) ([]models.LearningHistoryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing history: session_id=%d", sessionID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, session_id, word_id, direction, is_correct, response_time, user_answer, recorded_at
FROM learning_history
WHERE session_id = ?
ORDER BY id ASC
`, sessionID)
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LearningHistoryEntry
	for rows.Next() {
		var e models.LearningHistoryEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.WordID, &e.Direction, &e.IsCorrect, &e.ResponseTime, &e.UserAnswer, &e.RecordedAt); err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
