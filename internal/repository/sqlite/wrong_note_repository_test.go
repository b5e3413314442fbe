package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
	"github.com/vytor/vocabflash/internal/repository/sqlite"
	"github.com/vytor/vocabflash/internal/testutil"
)

type WrongNoteRepositorySuite struct {
	suite.Suite
	db     *sql.DB
	repo   repository.WrongNoteRepository
	wordID int64
}

func (s *WrongNoteRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewWrongNoteRepository(s.db)
	s.wordID = testutil.InsertWord(s.T(), s.db, "computer", "컴퓨터")
}

func (s *WrongNoteRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *WrongNoteRepositorySuite) TestAddThenAddAgainCounts() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Add(ctx, s.wordID, 1))
	s.Require().NoError(s.repo.Add(ctx, s.wordID, 2))

	note, err := s.repo.Get(ctx, s.wordID)
	s.Require().NoError(err)
	s.Require().NotNil(note)
	s.Assert().Equal(int64(1), note.FirstExamID)
	s.Assert().Equal(int64(2), note.LastExamID)
	s.Assert().Equal(2, note.WrongCount)
	s.Assert().False(note.Resolved)
}

func (s *WrongNoteRepositorySuite) TestResolveAndReopen() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Add(ctx, s.wordID, 1))

	ok, err := s.repo.Resolve(ctx, s.wordID)
	s.Require().NoError(err)
	s.Assert().True(ok)

	ok, err = s.repo.Resolve(ctx, s.wordID)
	s.Require().NoError(err)
	s.Assert().False(ok, "already resolved")

	list, err := s.repo.ListUnresolved(ctx)
	s.Require().NoError(err)
	s.Assert().Empty(list)

	s.Require().NoError(s.repo.Add(ctx, s.wordID, 3))
	note, err := s.repo.Get(ctx, s.wordID)
	s.Require().NoError(err)
	s.Assert().False(note.Resolved)
	s.Assert().Nil(note.ResolvedAt)
}

func (s *WrongNoteRepositorySuite) TestListUnresolvedJoinsWordAndStats() {
	ctx := context.Background()
	stats := sqlite.NewStatisticsRepository(s.db)
	_, err := stats.Update(ctx, s.wordID, func(st *models.WordStatistics) {
		st.TotalAttempts, st.CorrectCount, st.WrongCount = 4, 1, 3
	})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(ctx, s.wordID, 1))

	list, err := s.repo.ListUnresolved(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Assert().Equal("computer", list[0].SourceText)
	s.Assert().Equal("컴퓨터", list[0].TargetText)
	s.Assert().InDelta(75.0, list[0].WrongRate, 1e-9)
}

func TestWrongNoteRepositorySuite(t *testing.T) {
	suite.Run(t, new(WrongNoteRepositorySuite))
}
