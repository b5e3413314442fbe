package services_test

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
	"github.com/vytor/vocabflash/internal/repository/sqlite"
	"github.com/vytor/vocabflash/internal/services"
	"github.com/vytor/vocabflash/internal/testutil"
)

// fixture wires the engines over an in-memory database with a controllable
// clock and a seeded random source.
type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *sql.DB
	now time.Time

	wordRepo   repository.WordRepository
	statsRepo  repository.StatisticsRepository
	sessions   repository.SessionRepository
	exams      repository.ExamRepository
	wrongNotes repository.WrongNoteRepository

	store    services.StatisticsStore
	session  services.SessionEngine
	exam     services.ExamEngine
	wordSvc  services.WordService
	settings services.SettingsService
	reports  services.ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:   t,
		ctx: context.Background(),
		db:  testutil.NewTestDB(t),
		now: time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC),
	}
	t.Cleanup(func() { _ = f.db.Close() })

	f.wordRepo = sqlite.NewWordRepository(f.db)
	f.statsRepo = sqlite.NewStatisticsRepository(f.db)
	f.sessions = sqlite.NewSessionRepository(f.db)
	f.exams = sqlite.NewExamRepository(f.db)
	f.wrongNotes = sqlite.NewWrongNoteRepository(f.db)

	opts := []services.Option{
		services.WithClock(func() time.Time { return f.now }),
		services.WithRand(rand.New(rand.NewPCG(7, 11))),
		services.WithLocation(time.UTC),
	}
	f.store = services.NewStatisticsStore(f.wordRepo, f.statsRepo, opts...)
	f.session = services.NewSessionEngine(f.wordRepo, f.store, f.sessions, opts...)
	f.exam = services.NewExamEngine(f.wordRepo, f.store, f.sessions, f.exams, f.wrongNotes, opts...)
	f.wordSvc = services.NewWordService(f.wordRepo, f.store)
	f.settings = services.NewSettingsService(sqlite.NewSettingsRepository(f.db))
	f.reports = services.NewReportService(sqlite.NewReportRepository(f.db), f.settings, opts...)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) addWord(source, target string) int64 {
	f.t.Helper()
	w, err := f.wordSvc.Create(f.ctx, models.Word{SourceText: source, TargetText: target})
	require.NoError(f.t, err)
	return w.ID
}

// addStandardWords adds apple, book, computer and door in that order.
func (f *fixture) addStandardWords() []int64 {
	return []int64{
		f.addWord("apple", "사과"),
		f.addWord("book", "책"),
		f.addWord("computer", "컴퓨터"),
		f.addWord("door", "문"),
	}
}

func (f *fixture) setStats(wordID int64, correct, wrong, mastery int, last *time.Time) {
	f.t.Helper()
	_, err := f.statsRepo.Update(f.ctx, wordID, func(st *models.WordStatistics) {
		st.TotalAttempts = correct + wrong
		st.CorrectCount = correct
		st.WrongCount = wrong
		st.MasteryLevel = mastery
		st.LastStudyDate = last
	})
	require.NoError(f.t, err)
}

func (f *fixture) stats(wordID int64) models.WordStatistics {
	f.t.Helper()
	st, err := f.store.Get(f.ctx, wordID)
	require.NoError(f.t, err)
	require.NotNil(f.t, st)
	return *st
}
