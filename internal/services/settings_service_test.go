package services_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/models"
)

type SettingsServiceSuite struct {
	suite.Suite
	f *fixture
}

func (s *SettingsServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
}

func (s *SettingsServiceSuite) TestListAndGet() {
	all, err := s.f.settings.List(s.f.ctx)
	s.Require().NoError(err)
	s.Len(all, 11)

	goal, err := s.f.settings.Get(s.f.ctx, models.SettingDailyWordGoal)
	s.Require().NoError(err)
	s.Equal(models.KindInteger, goal.Kind)
	s.Equal(int64(50), goal.Value.Int)

	_, err = s.f.settings.Get(s.f.ctx, "no_such_key")
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *SettingsServiceSuite) TestSetTypedValues() {
	got, err := s.f.settings.Set(s.f.ctx, models.SettingDailyWordGoal, json.RawMessage(`80`))
	s.Require().NoError(err)
	s.Equal(int64(80), got.Value.Int)
	s.Equal(int64(50), got.DefaultValue.Int)
	s.Equal(int64(80), s.f.settings.Int(s.f.ctx, models.SettingDailyWordGoal, 1))

	got, err = s.f.settings.Set(s.f.ctx, models.SettingDailyWordGoal, json.RawMessage(`"90"`))
	s.Require().NoError(err)
	s.Equal(int64(90), got.Value.Int)

	_, err = s.f.settings.Set(s.f.ctx, "show_pronunciation", json.RawMessage(`true`))
	s.Require().NoError(err)
	s.True(s.f.settings.Bool(s.f.ctx, "show_pronunciation", false))

	got, err = s.f.settings.Set(s.f.ctx, "theme_mode", json.RawMessage(`"dark"`))
	s.Require().NoError(err)
	s.Equal("dark", got.Value.Str)
}

func (s *SettingsServiceSuite) TestSetRejectsBadValues() {
	for _, raw := range []string{`-1`, `"abc"`, `1.5`, `true`} {
		_, err := s.f.settings.Set(s.f.ctx, models.SettingDailyTimeGoal, json.RawMessage(raw))
		s.Equal(errors.ErrCodeValidation, errors.AsAppError(err).Code, raw)
	}
	_, err := s.f.settings.Set(s.f.ctx, "no_such_key", json.RawMessage(`1`))
	s.ErrorIs(err, errors.ErrNotFound)

	s.Equal(int64(30), s.f.settings.Int(s.f.ctx, models.SettingDailyTimeGoal, 0), "value unchanged")
}

func (s *SettingsServiceSuite) TestReset() {
	_, err := s.f.settings.Set(s.f.ctx, models.SettingDailyWordGoal, json.RawMessage(`5`))
	s.Require().NoError(err)

	got, err := s.f.settings.Reset(s.f.ctx, models.SettingDailyWordGoal)
	s.Require().NoError(err)
	s.Equal(int64(50), got.Value.Int)

	_, err = s.f.settings.Reset(s.f.ctx, "no_such_key")
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *SettingsServiceSuite) TestTypedAccessorsFallBack() {
	s.Equal(int64(7), s.f.settings.Int(s.f.ctx, "theme_mode", 7))
	s.Equal(int64(7), s.f.settings.Int(s.f.ctx, "no_such_key", 7))
	s.True(s.f.settings.Bool(s.f.ctx, models.SettingDailyWordGoal, true))
	s.True(s.f.settings.Bool(s.f.ctx, "auto_backup_enabled", false))
}

func TestSettingsServiceSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}
