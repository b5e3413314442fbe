package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/services"
	"github.com/vytor/vocabflash/internal/testutil/mocks"
)

type SessionEngineSuite struct {
	suite.Suite
	f *fixture
}

func (s *SessionEngineSuite) SetupTest() {
	s.f = newFixture(s.T())
}

func (s *SessionEngineSuite) start(opts services.StartOptions) int {
	n, err := s.f.session.Start(s.f.ctx, opts)
	s.Require().NoError(err)
	return n
}

func (s *SessionEngineSuite) answerAll(answers map[string]string) {
	for {
		card, err := s.f.session.Current()
		if stderrors.Is(err, errors.ErrCompleted) {
			return
		}
		s.Require().NoError(err)
		_, err = s.f.session.Submit(s.f.ctx, answers[card.Prompt], 1.0)
		s.Require().NoError(err)
	}
}

func (s *SessionEngineSuite) TestEndToEndPersonalizedSession() {
	ids := s.f.addStandardWords()

	total := s.start(services.StartOptions{Direction: models.Forward, Ordering: models.Personalized, WordLimit: 4})
	s.Equal(4, total)

	s.answerAll(standardAnswers)
	s.f.advance(90 * time.Second)

	summary, err := s.f.session.End(s.f.ctx)
	s.Require().NoError(err)
	s.Equal(4, summary.Total)
	s.Equal(4, summary.Correct)
	s.Equal(0, summary.Wrong)
	s.Equal(100.0, summary.Accuracy)
	s.Equal(90.0, summary.ElapsedSeconds)
	s.True(summary.Saved)
	s.False(s.f.session.Active())

	apple := s.f.stats(ids[0])
	s.Equal(0, apple.MasteryLevel, "one correct answer does not raise mastery")
	s.Equal(1, apple.ConsecutiveCorrect)

	for i := 0; i < 2; i++ {
		s.start(services.StartOptions{Direction: models.Forward, Ordering: models.Sequential})
		s.answerAll(standardAnswers)
		_, err := s.f.session.End(s.f.ctx)
		s.Require().NoError(err)
	}
	s.Equal(1, s.f.stats(ids[0]).MasteryLevel)

	stored, err := s.f.sessions.Get(s.f.ctx, summary.SessionID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.EndedAt)
	s.Equal(4, stored.CorrectCount)

	history, err := s.f.sessions.HistoryForSession(s.f.ctx, summary.SessionID)
	s.Require().NoError(err)
	s.Len(history, 4)
}

func (s *SessionEngineSuite) TestPersonalizedOrderFollowsScore() {
	ids := s.f.addStandardWords()
	today := s.f.now
	s.f.setStats(ids[1], 0, 3, 0, &today) // 63
	s.f.setStats(ids[2], 1, 1, 0, &today) // 41
	s.f.setStats(ids[3], 5, 0, 3, &today) // 8

	s.start(services.StartOptions{Direction: models.Forward, Ordering: models.Personalized})

	var prompts []string
	for {
		card, err := s.f.session.Current()
		if err != nil {
			break
		}
		prompts = append(prompts, card.Prompt)
		s.Require().NoError(s.f.session.Skip())
	}
	s.Equal([]string{"book", "apple", "computer", "door"}, prompts)
}

func (s *SessionEngineSuite) TestBackwardDirectionAndWordLimit() {
	s.f.addStandardWords()
	total := s.start(services.StartOptions{Direction: models.Backward, Ordering: models.Sequential, WordLimit: 2})
	s.Equal(2, total)

	card, err := s.f.session.Current()
	s.Require().NoError(err)
	s.Equal("사과", card.Prompt)
	s.Equal(1, card.Position)
	s.Equal(2, card.Total)

	res, err := s.f.session.Submit(s.f.ctx, "  APPLE ", 2)
	s.Require().NoError(err)
	s.True(res.IsCorrect)
	s.Equal("apple", res.CorrectAnswer)
	s.Equal("  APPLE ", res.UserAnswer)
}

func (s *SessionEngineSuite) TestWrongAnswer() {
	ids := s.f.addStandardWords()
	s.start(services.StartOptions{Direction: models.Forward, Ordering: models.Sequential})

	res, err := s.f.session.Submit(s.f.ctx, "배", 1)
	s.Require().NoError(err)
	s.False(res.IsCorrect)
	s.Equal("사과", res.CorrectAnswer)
	s.Equal(1, s.f.stats(ids[0]).WrongCount)
}

func (s *SessionEngineSuite) TestSkipDoesNotRecord() {
	ids := s.f.addStandardWords()
	s.start(services.StartOptions{Direction: models.Forward, Ordering: models.Sequential})

	s.Require().NoError(s.f.session.Skip())
	s.Equal(0, s.f.stats(ids[0]).TotalAttempts)

	card, err := s.f.session.Current()
	s.Require().NoError(err)
	s.Equal(ids[1], card.WordID)

	summary, err := s.f.session.End(s.f.ctx)
	s.Require().NoError(err)
	s.Equal(0, summary.Total)
	s.Equal(0.0, summary.Accuracy)
}

func (s *SessionEngineSuite) TestProgressAndHasNext() {
	s.f.addWord("apple", "사과")
	s.f.addWord("book", "책")
	s.start(services.StartOptions{Direction: models.Forward, Ordering: models.Sequential})

	p, err := s.f.session.Progress()
	s.Require().NoError(err)
	s.Equal(models.Progress{Position: 0, Total: 2, Percent: 0}, *p)

	s.Require().NoError(s.f.session.Skip())
	p, err = s.f.session.Progress()
	s.Require().NoError(err)
	s.Equal(50.0, p.Percent)

	next, err := s.f.session.HasNext()
	s.Require().NoError(err)
	s.True(next)

	s.Require().NoError(s.f.session.Skip())
	next, err = s.f.session.HasNext()
	s.Require().NoError(err)
	s.False(next)

	_, err = s.f.session.Current()
	s.ErrorIs(err, errors.ErrCompleted)
	_, err = s.f.session.Submit(s.f.ctx, "x", 0)
	s.ErrorIs(err, errors.ErrCompleted)
	s.ErrorIs(s.f.session.Skip(), errors.ErrCompleted)
}

func (s *SessionEngineSuite) TestGuards() {
	_, err := s.f.session.Current()
	s.ErrorIs(err, errors.ErrNoActiveSession)
	_, err = s.f.session.Submit(s.f.ctx, "x", 0)
	s.ErrorIs(err, errors.ErrNoActiveSession)
	s.ErrorIs(s.f.session.Skip(), errors.ErrNoActiveSession)
	_, err = s.f.session.End(s.f.ctx)
	s.ErrorIs(err, errors.ErrNoActiveSession)
	_, err = s.f.session.Progress()
	s.ErrorIs(err, errors.ErrNoActiveSession)
	_, err = s.f.session.HasNext()
	s.ErrorIs(err, errors.ErrNoActiveSession)
}

func (s *SessionEngineSuite) TestStartErrors() {
	_, err := s.f.session.Start(s.f.ctx, services.StartOptions{Direction: models.Forward, Ordering: models.Random})
	s.ErrorIs(err, errors.ErrNoWordsAvailable)

	id := s.f.addWord("apple", "사과")
	_, err = s.f.session.Start(s.f.ctx, services.StartOptions{Direction: models.Forward, Ordering: models.Random, FavoritesOnly: true})
	s.ErrorIs(err, errors.ErrNoWordsAvailable)

	_, err = s.f.session.Start(s.f.ctx, services.StartOptions{Direction: "sideways", Ordering: models.Random})
	s.Equal(errors.ErrCodeValidation, errors.AsAppError(err).Code)

	s.Require().NoError(s.f.wordRepo.SetFavorite(s.f.ctx, id, true))
	s.start(services.StartOptions{Direction: models.Forward, Ordering: models.Random, FavoritesOnly: true})

	_, err = s.f.session.Start(s.f.ctx, services.StartOptions{Direction: models.Forward, Ordering: models.Random})
	s.ErrorIs(err, errors.ErrSessionAlreadyActive)
}

func TestSessionEngineSuite(t *testing.T) {
	suite.Run(t, new(SessionEngineSuite))
}

func TestSessionEngine_StatisticsFailureDoesNotAdvance(t *testing.T) {
	ctx := context.Background()
	words := new(mocks.MockWordRepository)
	stats := new(mocks.MockStatisticsStore)
	sessions := new(mocks.MockSessionRepository)

	apple := models.Word{ID: 1, SourceText: "apple", TargetText: "사과"}
	words.On("ListAll", ctx).Return([]models.Word{apple}, nil)
	sessions.On("Create", ctx, mock.AnythingOfType("models.StudySession")).Return(int64(10), nil)
	stats.On("RecordAnswer", ctx, int64(1), true).Return(nil, errors.NewInternalError(stderrors.New("disk full"))).Once()

	engine := services.NewSessionEngine(words, stats, sessions)
	_, err := engine.Start(ctx, services.StartOptions{Direction: models.Forward, Ordering: models.Sequential})
	require.NoError(t, err)

	_, err = engine.Submit(ctx, "사과", 1)
	require.Error(t, err)

	card, err := engine.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(1), card.WordID, "card is not consumed")
	sessions.AssertNotCalled(t, "InsertHistory", mock.Anything, mock.Anything)
}

func TestSessionEngine_HistoryFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	words := new(mocks.MockWordRepository)
	stats := new(mocks.MockStatisticsStore)
	sessions := new(mocks.MockSessionRepository)

	words.On("ListAll", ctx).Return([]models.Word{{ID: 1, SourceText: "apple", TargetText: "사과"}}, nil)
	sessions.On("Create", ctx, mock.AnythingOfType("models.StudySession")).Return(int64(10), nil)
	stats.On("RecordAnswer", ctx, int64(1), true).Return(&models.WordStatistics{WordID: 1, TotalAttempts: 1, CorrectCount: 1}, nil)
	sessions.On("InsertHistory", ctx, mock.AnythingOfType("models.LearningHistoryEntry")).Return(int64(0), stderrors.New("locked"))
	sessions.On("Finish", ctx, mock.MatchedBy(func(s models.StudySession) bool {
		return s.ID == 10 && s.TotalWords == 1 && s.CorrectCount == 1 && s.AccuracyRate == 100
	})).Return(nil)

	engine := services.NewSessionEngine(words, stats, sessions)
	_, err := engine.Start(ctx, services.StartOptions{Direction: models.Forward, Ordering: models.Sequential})
	require.NoError(t, err)

	res, err := engine.Submit(ctx, "사과", 1)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)

	summary, err := engine.End(ctx)
	require.NoError(t, err)
	assert.True(t, summary.Saved)
	sessions.AssertExpectations(t)
}

func TestSessionEngine_EndAlwaysResets(t *testing.T) {
	ctx := context.Background()
	words := new(mocks.MockWordRepository)
	sessions := new(mocks.MockSessionRepository)

	words.On("ListAll", ctx).Return([]models.Word{{ID: 1, SourceText: "a", TargetText: "b"}}, nil)
	sessions.On("Create", ctx, mock.Anything).Return(int64(3), nil)
	sessions.On("Finish", ctx, mock.Anything).Return(stderrors.New("gone"))

	engine := services.NewSessionEngine(words, new(mocks.MockStatisticsStore), sessions)
	_, err := engine.Start(ctx, services.StartOptions{Direction: models.Forward, Ordering: models.Sequential})
	require.NoError(t, err)

	summary, err := engine.End(ctx)
	require.NoError(t, err)
	assert.False(t, summary.Saved)
	assert.False(t, engine.Active())
}
