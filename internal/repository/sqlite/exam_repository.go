package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

const examColumns = "id, exam_type, question_mode, total_questions, time_limit, correct_count, wrong_count, score, time_taken, created_at, finished_at"

type examRepository struct {
	db *sql.DB
}

// NewExamRepository creates a new ExamRepository implementation
func NewExamRepository(db *sql.DB) repository.ExamRepository {
	return &examRepository{db: db}
}

func scanExam(row rowScanner) (models.Exam, error) {
	var e models.Exam
	var limit sql.NullInt64
	var finished sql.NullTime
	err := row.Scan(&e.ID, &e.Type, &e.Mode, &e.TotalQuestions, &limit, &e.CorrectCount, &e.WrongCount, &e.Score, &e.TimeTaken, &e.CreatedAt, &finished)
	if limit.Valid {
		l := int(limit.Int64)
		e.TimeLimit = &l
	}
	e.FinishedAt = nullTimePtr(finished)
	return e, err
}

func encodeChoices(choices []string) (any, error) {
	if len(choices) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(choices)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *examRepository) Create(ctx context.Context, e models.Exam, sessionID int64, questions []models.ExamQuestion) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("creating exam: type=%s, mode=%s, questions=%d", e.Type, e.Mode, len(questions))

	var sid any
	if sessionID > 0 {
		sid = sessionID
	}

	var examID int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO exams (session_id, exam_type, question_mode, total_questions, time_limit, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, sid, e.Type, e.Mode, e.TotalQuestions, e.TimeLimit, e.CreatedAt.UTC())
		if err != nil {
			return err
		}
		if examID, err = res.LastInsertId(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO exam_questions (exam_id, word_id, question_number, direction, prompt_text, correct_answer, choices)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, q := range questions {
			choices, err := encodeChoices(q.Choices)
			if err != nil {
				return fmt.Errorf("encode choices for question %d: %w", q.QuestionNumber, err)
			}
			if _, err := stmt.ExecContext(ctx, examID, q.WordID, q.QuestionNumber, q.Direction, q.PromptText, q.CorrectAnswer, choices); err != nil {
				return fmt.Errorf("insert question %d: %w", q.QuestionNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create exam: %v", err)
		return 0, err
	}
	log.Debug("exam created: id=%d", examID)
	return examID, nil
}

func (r *examRepository) Get(ctx context.Context, id int64) (*models.Exam, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("getting exam: id=%d", id)

	e, err := scanExam(r.db.QueryRowContext(ctx, `SELECT `+examColumns+` FROM exams WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get exam: %v", err)
		return nil, err
	}
	return &e, nil
}

func (r *examRepository) Questions(ctx context.Context, examID int64) ([]models.ExamQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("listing questions: exam_id=%d", examID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, exam_id, word_id, question_number, direction, prompt_text, correct_answer, user_answer, is_correct, response_time, choices
FROM exam_questions
WHERE exam_id = ?
ORDER BY question_number ASC
`, examID)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.ExamQuestion
	for rows.Next() {
		var q models.ExamQuestion
		var answer, choices sql.NullString
		if err := rows.Scan(&q.ID, &q.ExamID, &q.WordID, &q.QuestionNumber, &q.Direction, &q.PromptText, &q.CorrectAnswer, &answer, &q.IsCorrect, &q.ResponseTime, &choices); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		if answer.Valid {
			a := answer.String
			q.UserAnswer = &a
		}
		if choices.Valid && choices.String != "" {
			if err := json.Unmarshal([]byte(choices.String), &q.Choices); err != nil {
				log.Error("corrupt choices for question %d: %v", q.ID, err)
				return nil, fmt.Errorf("decode choices for question %d: %w", q.ID, err)
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *examRepository) UpdateQuestion(ctx context.Context, q models.ExamQuestion) error {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("grading question: exam_id=%d, number=%d, correct=%t", q.ExamID, q.QuestionNumber, q.IsCorrect)

	_, err := r.db.ExecContext(ctx, `
UPDATE exam_questions
SET user_answer = ?, is_correct = ?, response_time = ?
WHERE exam_id = ? AND question_number = ?
`, q.UserAnswer, q.IsCorrect, q.ResponseTime, q.ExamID, q.QuestionNumber)
	if err != nil {
		log.Error("failed to update question: %v", err)
	}
	return err
}

func (r *examRepository) Finish(ctx context.Context, e models.Exam) error {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("finishing exam: id=%d, score=%.1f", e.ID, e.Score)

	res, err := r.db.ExecContext(ctx, `
UPDATE exams
SET correct_count = ?, wrong_count = ?, score = ?, time_taken = ?, finished_at = ?
WHERE id = ?
`, e.CorrectCount, e.WrongCount, e.Score, e.TimeTaken, utcPtr(e.FinishedAt), e.ID)
	if err != nil {
		log.Error("failed to finish exam: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *examRepository) ListRecent(ctx context.Context, limit int) ([]models.Exam, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("listing recent exams: limit=%d", limit)

	query := sqlBuilder.Select(examColumns).From("exams").
		Where("finished_at IS NOT NULL").
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list exams: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			log.Error("failed to scan exam row: %v", err)
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

func (r *examRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("deleting exam: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete exam: %v", err)
	}
	return err
}
