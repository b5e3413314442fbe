package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
	"github.com/vytor/vocabflash/internal/repository/sqlite"
	"github.com/vytor/vocabflash/internal/testutil"
)

type ReportRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	repo     repository.ReportRepository
	sessions repository.SessionRepository
	stats    repository.StatisticsRepository
}

func (s *ReportRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewReportRepository(s.db)
	s.sessions = sqlite.NewSessionRepository(s.db)
	s.stats = sqlite.NewStatisticsRepository(s.db)
}

func (s *ReportRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ReportRepositorySuite) session(started time.Time, finished bool, total, correct int) {
	ctx := context.Background()
	id, err := s.sessions.Create(ctx, models.StudySession{Type: models.SessionFlashcard, Ordering: models.Sequential, StartedAt: started})
	s.Require().NoError(err)
	if !finished {
		return
	}
	ended := started.Add(10 * time.Minute)
	s.Require().NoError(s.sessions.Finish(ctx, models.StudySession{
		ID: id, EndedAt: &ended, TotalWords: total, CorrectCount: correct, WrongCount: total - correct,
	}))
}

func (s *ReportRepositorySuite) TestSessionsBetweenOnlyFinishedInRange() {
	ctx := context.Background()
	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	s.session(day.Add(-time.Hour), true, 5, 5)
	s.session(day.Add(9*time.Hour), true, 10, 8)
	s.session(day.Add(10*time.Hour), false, 0, 0)
	s.session(day.Add(25*time.Hour), true, 3, 1)

	rows, err := s.repo.SessionsBetween(ctx, day, day.Add(24*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Assert().Equal(10, rows[0].TotalWords)
	s.Assert().Equal(8, rows[0].CorrectCount)
	s.Require().NotNil(rows[0].EndedAt)
	s.Assert().Equal(10*time.Minute, rows[0].EndedAt.Sub(rows[0].StartedAt))
}

func (s *ReportRepositorySuite) TestMasteryCountsIncludeWordsWithoutStats() {
	ctx := context.Background()
	a := testutil.InsertWord(s.T(), s.db, "apple", "사과")
	testutil.InsertWord(s.T(), s.db, "book", "책")
	_, err := s.stats.Update(ctx, a, func(st *models.WordStatistics) { st.MasteryLevel = 2 })
	s.Require().NoError(err)

	counts, err := s.repo.MasteryCounts(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]models.MasteryCount{{Level: 0, Count: 1}, {Level: 2, Count: 1}}, counts)
}

func (s *ReportRepositorySuite) TestTopWrongOrdering() {
	ctx := context.Background()
	a := testutil.InsertWord(s.T(), s.db, "apple", "사과")
	b := testutil.InsertWord(s.T(), s.db, "book", "책")
	c := testutil.InsertWord(s.T(), s.db, "computer", "컴퓨터")
	set := func(id int64, correct, wrong int) {
		_, err := s.stats.Update(ctx, id, func(st *models.WordStatistics) {
			st.TotalAttempts, st.CorrectCount, st.WrongCount = correct+wrong, correct, wrong
		})
		s.Require().NoError(err)
	}
	set(a, 3, 1)
	set(b, 1, 3)
	set(c, 2, 0)

	top, err := s.repo.TopWrong(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2, "words never missed are excluded")
	s.Assert().Equal(b, top[0].WordID)
	s.Assert().InDelta(75.0, top[0].WrongRate, 1e-9)
	s.Assert().Equal(a, top[1].WordID)

	limited, err := s.repo.TopWrong(ctx, 1)
	s.Require().NoError(err)
	s.Assert().Len(limited, 1)
}

func TestReportRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReportRepositorySuite))
}
