package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/learning"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

const defaultRecentExams = 10

// ExamOptions describes an exam to generate.
type ExamOptions struct {
	Type           models.ExamType
	Mode           models.QuestionMode
	TotalQuestions int
	Ordering       models.Ordering
	// TimeLimit is advisory and only stored.
	TimeLimit *int
}

// Answer is a submission for the current question. Choice, when set, is a
// 0-based index into the question's choices and takes precedence over Text.
type Answer struct {
	Text         string
	Choice       *int
	ResponseTime float64
}

// ExamEngine drives one learner through an exam and serves exam history.
// The in-progress state is not safe for concurrent use.
type ExamEngine interface {
	Create(ctx context.Context, opts ExamOptions) (int64, error)
	Current() (*models.Question, error)
	Submit(answer Answer) error
	Goto(questionNumber int) error
	Finish(ctx context.Context) (*models.ExamResult, error)
	Abandon(ctx context.Context) error
	Active() bool

	GetResult(ctx context.Context, examID int64) (*models.ExamDetail, error)
	ListRecent(ctx context.Context, limit int) ([]models.Exam, error)
	ListWrongNotes(ctx context.Context) ([]models.WrongNoteWithWord, error)
	ResolveWrongNote(ctx context.Context, wordID int64) error
}

type activeExam struct {
	exam      models.Exam
	sessionID int64
	questions []models.ExamQuestion
	answers   []*string
	times     []float64
	position  int
	startedAt time.Time
}

type examEngine struct {
	words      repository.WordSource
	stats      StatisticsStore
	sessions   repository.SessionRepository
	exams      repository.ExamRepository
	wrongNotes repository.WrongNoteRepository
	opts       options

	active *activeExam
}

// NewExamEngine creates a new ExamEngine
func NewExamEngine(
	words repository.WordSource,
	stats StatisticsStore,
	sessions repository.SessionRepository,
	exams repository.ExamRepository,
	wrongNotes repository.WrongNoteRepository,
	opts ...Option,
) ExamEngine {
	return &examEngine{
		words:      words,
		stats:      stats,
		sessions:   sessions,
		exams:      exams,
		wrongNotes: wrongNotes,
		opts:       applyOptions(opts),
	}
}

func (e *examEngine) Active() bool {
	return e.active != nil
}

func (e *examEngine) validate(opts ExamOptions) error {
	if !opts.Type.Valid() {
		return errors.NewValidationError("exam_type", "must be short_answer or multiple_choice")
	}
	if !opts.Mode.Valid() {
		return errors.NewValidationError("question_mode", "must be forward, backward or mixed")
	}
	if opts.TotalQuestions < 1 {
		return errors.NewValidationError("total_questions", "must be at least 1")
	}
	if e.opts.maxQuestions > 0 && opts.TotalQuestions > e.opts.maxQuestions {
		return errors.NewValidationError("total_questions", fmt.Sprintf("must be at most %d", e.opts.maxQuestions))
	}
	if !opts.Ordering.Valid() {
		return errors.NewValidationError("ordering", "must be sequential, random or personalized")
	}
	if opts.TimeLimit != nil && *opts.TimeLimit < 0 {
		return errors.NewValidationError("time_limit", "must not be negative")
	}
	return nil
}

func (e *examEngine) Create(ctx context.Context, opts ExamOptions) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exam")
	log.Debug("creating exam: type=%s, mode=%s, questions=%d, ordering=%s",
		opts.Type, opts.Mode, opts.TotalQuestions, opts.Ordering)

	if e.active != nil {
		return 0, errors.ErrExamAlreadyActive
	}
	if opts.Ordering == "" {
		opts.Ordering = models.Random
	}
	if err := e.validate(opts); err != nil {
		return 0, err
	}

	words, err := e.words.ListAll(ctx)
	if err != nil {
		log.Error("failed to load words: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if len(words) < opts.TotalQuestions {
		return 0, errors.NewInsufficientWordsError(opts.TotalQuestions, len(words))
	}

	var scores map[int64]float64
	if opts.Ordering == models.Personalized {
		if scores, err = e.stats.Scores(ctx, words); err != nil {
			return 0, err
		}
	}
	selected := learning.OrderWords(words, opts.Ordering, scores, e.opts.rng)[:opts.TotalQuestions]
	questions := e.buildQuestions(selected, words, opts)

	createdAt := e.opts.now()
	sessionID, err := e.sessions.Create(ctx, models.StudySession{
		Type:       models.SessionExam,
		Ordering:   opts.Ordering,
		StartedAt:  createdAt,
		TotalWords: len(questions),
	})
	if err != nil {
		log.Error("failed to create exam session: %v", err)
		return 0, errors.NewInternalError(err)
	}

	exam := models.Exam{
		Type:           opts.Type,
		Mode:           opts.Mode,
		TotalQuestions: len(questions),
		TimeLimit:      opts.TimeLimit,
		CreatedAt:      createdAt,
	}
	exam.ID, err = e.exams.Create(ctx, exam, sessionID, questions)
	if err != nil {
		log.Error("failed to create exam: %v", err)
		e.closeSession(ctx, sessionID, 0, 0)
		return 0, errors.NewInternalError(err)
	}
	for i := range questions {
		questions[i].ExamID = exam.ID
	}

	e.active = &activeExam{
		exam:      exam,
		sessionID: sessionID,
		questions: questions,
		answers:   make([]*string, len(questions)),
		times:     make([]float64, len(questions)),
		startedAt: createdAt,
	}
	log.Info("exam created: id=%d, questions=%d", exam.ID, len(questions))
	return exam.ID, nil
}

// buildQuestions draws distractors from the whole catalogue, not only the
// selected words.
func (e *examEngine) buildQuestions(selected, catalogue []models.Word, opts ExamOptions) []models.ExamQuestion {
	questions := make([]models.ExamQuestion, len(selected))
	for i, w := range selected {
		dir := learning.PickDirection(opts.Mode, e.opts.rng)
		q := models.ExamQuestion{
			WordID:         w.ID,
			QuestionNumber: i + 1,
			Direction:      dir,
			PromptText:     w.Prompt(dir),
			CorrectAnswer:  w.Answer(dir),
		}
		if opts.Type == models.MultipleChoice {
			pool := make([]string, 0, len(catalogue)-1)
			for _, other := range catalogue {
				if other.ID != w.ID {
					pool = append(pool, other.Answer(dir))
				}
			}
			q.Choices = learning.BuildChoices(q.CorrectAnswer, pool, e.opts.rng)
		}
		questions[i] = q
	}
	return questions
}

func (e *examEngine) guard() (*activeExam, error) {
	if e.active == nil {
		return nil, errors.ErrNoActiveExam
	}
	if e.active.position >= len(e.active.questions) {
		return nil, errors.ErrCompleted
	}
	return e.active, nil
}

func (e *examEngine) Current() (*models.Question, error) {
	a, err := e.guard()
	if err != nil {
		return nil, err
	}
	q := a.questions[a.position]
	return &models.Question{
		QuestionNumber: q.QuestionNumber,
		Prompt:         q.PromptText,
		Choices:        q.Choices,
		Answer:         a.answers[a.position],
		Position:       a.position + 1,
		Total:          len(a.questions),
	}, nil
}

func (e *examEngine) Submit(answer Answer) error {
	a, err := e.guard()
	if err != nil {
		return err
	}
	q := a.questions[a.position]

	text := answer.Text
	if answer.Choice != nil {
		if q.Choices == nil || *answer.Choice < 0 || *answer.Choice >= len(q.Choices) {
			return errors.ErrInvalidChoice
		}
		text = q.Choices[*answer.Choice]
	}

	a.answers[a.position] = &text
	a.times[a.position] = answer.ResponseTime
	a.position++
	return nil
}

func (e *examEngine) Goto(questionNumber int) error {
	if e.active == nil {
		return errors.ErrNoActiveExam
	}
	if questionNumber < 1 || questionNumber > len(e.active.questions) {
		return errors.ErrInvalidQuestionNumber
	}
	e.active.position = questionNumber - 1
	return nil
}

func (e *examEngine) Finish(ctx context.Context) (*models.ExamResult, error) {
	log := logger.FromContext(ctx).WithPrefix("exam")

	a := e.active
	if a == nil {
		return nil, errors.ErrNoActiveExam
	}
	e.active = nil
	log.Debug("finishing exam: id=%d", a.exam.ID)

	result := &models.ExamResult{
		ExamID:        a.exam.ID,
		Total:         len(a.questions),
		FailedWordIDs: []int64{},
	}

	// Each word is handled on its own; one failure never stops the rest.
	for i := range a.questions {
		q := &a.questions[i]
		q.UserAnswer = a.answers[i]
		q.ResponseTime = a.times[i]
		q.IsCorrect = q.UserAnswer != nil && learning.AnswerMatches(*q.UserAnswer, q.CorrectAnswer)
		if q.IsCorrect {
			result.Correct++
		} else {
			result.Wrong++
		}

		qlog := log.WithField("word_id", q.WordID)
		if err := e.exams.UpdateQuestion(ctx, *q); err != nil {
			qlog.Warn("failed to save grading for question %d: %v", q.QuestionNumber, err)
		}
		if _, err := e.stats.RecordAnswer(ctx, q.WordID, q.IsCorrect); err != nil {
			qlog.Warn("failed to update statistics: %v", err)
			result.FailedWordIDs = append(result.FailedWordIDs, q.WordID)
		}
		if !q.IsCorrect {
			if err := e.wrongNotes.Add(ctx, q.WordID, a.exam.ID); err != nil {
				qlog.Warn("failed to add wrong note: %v", err)
			}
		}
	}

	finished := e.opts.now()
	result.Score = learning.Percent(result.Correct, result.Total)
	result.TimeTaken = learning.Round(finished.Sub(a.startedAt).Seconds(), 1)

	exam := a.exam
	exam.CorrectCount = result.Correct
	exam.WrongCount = result.Wrong
	exam.Score = result.Score
	exam.TimeTaken = result.TimeTaken
	exam.FinishedAt = &finished

	result.Saved = true
	if err := e.exams.Finish(ctx, exam); err != nil {
		log.Error("failed to save exam result: id=%d: %v", exam.ID, err)
		result.Saved = false
	}
	if !e.closeSession(ctx, a.sessionID, result.Correct, result.Wrong) {
		result.Saved = false
	}

	log.Info("exam finished: id=%d, correct=%d/%d, score=%.1f, failed_words=%d",
		exam.ID, result.Correct, result.Total, result.Score, len(result.FailedWordIDs))
	return result, nil
}

func (e *examEngine) closeSession(ctx context.Context, sessionID int64, correct, wrong int) bool {
	ended := e.opts.now()
	total := correct + wrong
	err := e.sessions.Finish(ctx, models.StudySession{
		ID:           sessionID,
		EndedAt:      &ended,
		TotalWords:   total,
		CorrectCount: correct,
		WrongCount:   wrong,
		AccuracyRate: learning.Percent(correct, total),
	})
	if err != nil {
		logger.FromContext(ctx).Error("failed to close exam session: id=%d: %v", sessionID, err)
		return false
	}
	return true
}

func (e *examEngine) Abandon(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("exam")

	a := e.active
	if a == nil {
		return errors.ErrNoActiveExam
	}
	e.active = nil

	e.closeSession(ctx, a.sessionID, 0, 0)
	if err := e.exams.Delete(ctx, a.exam.ID); err != nil {
		log.Error("failed to delete abandoned exam: id=%d: %v", a.exam.ID, err)
		return errors.NewInternalError(err)
	}
	log.Info("exam abandoned: id=%d", a.exam.ID)
	return nil
}

func (e *examEngine) GetResult(ctx context.Context, examID int64) (*models.ExamDetail, error) {
	log := logger.FromContext(ctx).WithPrefix("exam")
	log.Debug("getting exam result: id=%d", examID)

	exam, err := e.exams.Get(ctx, examID)
	if err != nil {
		log.Error("failed to get exam: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if exam == nil {
		return nil, errors.NewNotFoundError("exam", examID)
	}

	questions, err := e.exams.Questions(ctx, examID)
	if err != nil {
		log.Error("failed to get exam questions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	detail := &models.ExamDetail{Exam: *exam, Questions: questions}
	answered := 0
	sum, lo, hi := 0.0, math.Inf(1), 0.0
	for _, q := range questions {
		if q.UserAnswer == nil {
			continue
		}
		answered++
		sum += q.ResponseTime
		lo = math.Min(lo, q.ResponseTime)
		hi = math.Max(hi, q.ResponseTime)
	}
	if answered > 0 {
		detail.AvgResponseTime = learning.Round(sum/float64(answered), 2)
		detail.MinResponseTime = lo
		detail.MaxResponseTime = hi
	}
	return detail, nil
}

func (e *examEngine) ListRecent(ctx context.Context, limit int) ([]models.Exam, error) {
	if limit <= 0 {
		limit = defaultRecentExams
	}
	exams, err := e.exams.ListRecent(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list recent exams: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return exams, nil
}

func (e *examEngine) ListWrongNotes(ctx context.Context) ([]models.WrongNoteWithWord, error) {
	notes, err := e.wrongNotes.ListUnresolved(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list wrong notes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return notes, nil
}

func (e *examEngine) ResolveWrongNote(ctx context.Context, wordID int64) error {
	log := logger.FromContext(ctx).WithPrefix("exam")

	ok, err := e.wrongNotes.Resolve(ctx, wordID)
	if err != nil {
		log.Error("failed to resolve wrong note: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("wrong note", wordID)
	}
	log.Info("wrong note resolved: word_id=%d", wordID)
	return nil
}
