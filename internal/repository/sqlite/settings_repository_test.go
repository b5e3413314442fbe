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

type SettingsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SettingsRepository
}

func (s *SettingsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSettingsRepository(s.db)
}

func (s *SettingsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SettingsRepositorySuite) TestDefaultsAreTyped() {
	ctx := context.Background()

	goal, err := s.repo.Get(ctx, models.SettingDailyWordGoal)
	s.Require().NoError(err)
	s.Require().NotNil(goal)
	s.Assert().Equal(models.KindInteger, goal.Kind)
	s.Assert().Equal(int64(50), goal.Value.Int)

	pron, err := s.repo.Get(ctx, "show_pronunciation")
	s.Require().NoError(err)
	s.Assert().Equal(models.BoolValue(false), pron.Value)

	all, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(all, 11)
}

func (s *SettingsRepositorySuite) TestSetAndReset() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, models.SettingDailyWordGoal, models.IntValue(80)))
	got, err := s.repo.Get(ctx, models.SettingDailyWordGoal)
	s.Require().NoError(err)
	s.Assert().Equal(int64(80), got.Value.Int)
	s.Assert().Equal(int64(50), got.DefaultValue.Int)

	s.Require().NoError(s.repo.Reset(ctx, models.SettingDailyWordGoal))
	got, err = s.repo.Get(ctx, models.SettingDailyWordGoal)
	s.Require().NoError(err)
	s.Assert().Equal(int64(50), got.Value.Int)
}

func (s *SettingsRepositorySuite) TestSet_WrongKindOrUnknownKey() {
	ctx := context.Background()
	s.Assert().ErrorIs(s.repo.Set(ctx, models.SettingDailyWordGoal, models.StringValue("many")), sql.ErrNoRows)
	s.Assert().ErrorIs(s.repo.Set(ctx, "no_such_key", models.IntValue(1)), sql.ErrNoRows)
	s.Assert().ErrorIs(s.repo.Reset(ctx, "no_such_key"), sql.ErrNoRows)

	missing, err := s.repo.Get(ctx, "no_such_key")
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func TestSettingsRepositorySuite(t *testing.T) {
	suite.Run(t, new(SettingsRepositorySuite))
}
