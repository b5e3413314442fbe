package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/learning"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

const (
	dateLayout        = "2006-01-02"
	streakLookbackDay = 365
	defaultTrendDays  = 7
	maxTrendDays      = 365
	defaultTopWrong   = 20
	suggestionTopN    = 10

	defaultDailyWordGoal = 50
	defaultDailyTimeGoal = 30
)

// ReportService derives read-only learning summaries
type ReportService interface {
	TodaySummary(ctx context.Context) (*models.TodaySummary, error)
	WeeklySummary(ctx context.Context) (*models.WeeklySummary, error)
	Trend(ctx context.Context, days int) ([]models.TrendPoint, error)
	MasteryDistribution(ctx context.Context) ([]models.MasteryCount, error)
	TopWrong(ctx context.Context, limit int) ([]models.TopWrongWord, error)
	GoalAchievement(ctx context.Context) (*models.GoalAchievement, error)
	StreakDays(ctx context.Context) (int, error)
	Suggestions(ctx context.Context) ([]string, error)
}

type reportService struct {
	repo     repository.ReportRepository
	settings SettingsService
	opts     options
}

// NewReportService creates a new ReportService
func NewReportService(repo repository.ReportRepository, settings SettingsService, opts ...Option) ReportService {
	return &reportService{repo: repo, settings: settings, opts: applyOptions(opts)}
}

func (s *reportService) today() time.Time {
	now := s.opts.now().In(s.opts.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.opts.location)
}

// daily returns one summary per calendar day starting at first, including
// days without any study.
func (s *reportService) daily(ctx context.Context, first time.Time, days int) ([]models.DailySummary, error) {
	log := logger.FromContext(ctx).WithPrefix("report")

	end := first.AddDate(0, 0, days)
	rows, err := s.repo.SessionsBetween(ctx, first, end)
	if err != nil {
		log.Error("failed to load sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	byDate := make(map[string]*models.DailySummary, days)
	out := make([]models.DailySummary, days)
	for i := range out {
		out[i].Date = first.AddDate(0, 0, i).Format(dateLayout)
		byDate[out[i].Date] = &out[i]
	}
	for _, r := range rows {
		d, ok := byDate[r.StartedAt.In(s.opts.location).Format(dateLayout)]
		if !ok {
			continue
		}
		d.WordsLearned += r.TotalWords
		d.Correct += r.CorrectCount
		d.Wrong += r.WrongCount
		d.Sessions++
		if r.EndedAt != nil && r.EndedAt.After(r.StartedAt) {
			d.StudyMinutes += r.EndedAt.Sub(r.StartedAt).Minutes()
		}
	}
	for i := range out {
		out[i].Accuracy = learning.Percent(out[i].Correct, out[i].Correct+out[i].Wrong)
		out[i].StudyMinutes = learning.Round(out[i].StudyMinutes, 1)
	}
	return out, nil
}

func (s *reportService) TodaySummary(ctx context.Context) (*models.TodaySummary, error) {
	days, err := s.daily(ctx, s.today(), 1)
	if err != nil {
		return nil, err
	}
	goal := s.goalFor(ctx, days[0])
	streak, err := s.StreakDays(ctx)
	if err != nil {
		return nil, err
	}
	return &models.TodaySummary{
		DailySummary:    days[0],
		GoalAchievement: goal.DailyWordAchievement,
		StreakDays:      streak,
	}, nil
}

func (s *reportService) WeeklySummary(ctx context.Context) (*models.WeeklySummary, error) {
	days, err := s.daily(ctx, s.today().AddDate(0, 0, -6), 7)
	if err != nil {
		return nil, err
	}

	summary := &models.WeeklySummary{}
	accuracySum := 0.0
	for _, d := range days {
		summary.TotalWords += d.WordsLearned
		summary.TotalSessions += d.Sessions
		if d.WordsLearned > 0 {
			summary.ActiveDays++
			accuracySum += d.Accuracy
		}
	}
	if summary.ActiveDays > 0 {
		summary.AvgAccuracy = learning.Round(accuracySum/float64(summary.ActiveDays), 1)
	}
	summary.DailyAverage = learning.Round(float64(summary.TotalWords)/7, 1)
	return summary, nil
}

func (s *reportService) Trend(ctx context.Context, days int) ([]models.TrendPoint, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	days = min(days, maxTrendDays)

	summaries, err := s.daily(ctx, s.today().AddDate(0, 0, -(days-1)), days)
	if err != nil {
		return nil, err
	}
	points := make([]models.TrendPoint, len(summaries))
	for i, d := range summaries {
		points[i] = models.TrendPoint{Date: d.Date, Words: d.WordsLearned, Accuracy: d.Accuracy}
	}
	return points, nil
}

func (s *reportService) MasteryDistribution(ctx context.Context) ([]models.MasteryCount, error) {
	counts, err := s.repo.MasteryCounts(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load mastery distribution: %v", err)
		return nil, errors.NewInternalError(err)
	}
	out := make([]models.MasteryCount, models.MaxMasteryLevel+1)
	for level := range out {
		out[level].Level = level
	}
	for _, c := range counts {
		if c.Level >= 0 && c.Level <= models.MaxMasteryLevel {
			out[c.Level].Count = c.Count
		}
	}
	return out, nil
}

func (s *reportService) TopWrong(ctx context.Context, limit int) ([]models.TopWrongWord, error) {
	if limit <= 0 {
		limit = defaultTopWrong
	}
	words, err := s.repo.TopWrong(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load top wrong words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for i := range words {
		words[i].WrongRate = learning.Round(words[i].WrongRate, 2)
	}
	return words, nil
}

func (s *reportService) GoalAchievement(ctx context.Context) (*models.GoalAchievement, error) {
	days, err := s.daily(ctx, s.today(), 1)
	if err != nil {
		return nil, err
	}
	goal := s.goalFor(ctx, days[0])
	return &goal, nil
}

// goalFor measures study time from real session durations.
func (s *reportService) goalFor(ctx context.Context, day models.DailySummary) models.GoalAchievement {
	wordGoal := int(s.settings.Int(ctx, models.SettingDailyWordGoal, defaultDailyWordGoal))
	timeGoal := int(s.settings.Int(ctx, models.SettingDailyTimeGoal, defaultDailyTimeGoal))

	g := models.GoalAchievement{
		DailyWordGoal:   wordGoal,
		DailyWordActual: day.WordsLearned,
		DailyTimeGoal:   timeGoal,
		DailyTimeActual: day.StudyMinutes,
	}
	if wordGoal > 0 {
		g.DailyWordAchievement = learning.Round(float64(day.WordsLearned)/float64(wordGoal)*100, 1)
	}
	if timeGoal > 0 {
		g.DailyTimeAchievement = learning.Round(day.StudyMinutes/float64(timeGoal)*100, 1)
	}
	return g
}

// StreakDays counts consecutive study days ending today. A day without
// study today means no streak.
func (s *reportService) StreakDays(ctx context.Context) (int, error) {
	days, err := s.daily(ctx, s.today().AddDate(0, 0, -(streakLookbackDay-1)), streakLookbackDay)
	if err != nil {
		return 0, err
	}
	streak := 0
	for i := len(days) - 1; i >= 0 && days[i].WordsLearned > 0; i-- {
		streak++
	}
	return streak, nil
}

func (s *reportService) Suggestions(ctx context.Context) ([]string, error) {
	var suggestions []string

	streak, err := s.StreakDays(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case streak >= 7:
		suggestions = append(suggestions, fmt.Sprintf("%d-day study streak! Outstanding!", streak))
	case streak >= 3:
		suggestions = append(suggestions, fmt.Sprintf("%d days in a row. Keep it going!", streak))
	case streak > 0:
		suggestions = append(suggestions, fmt.Sprintf("Day %d of your study streak.", streak))
	}

	goal, err := s.GoalAchievement(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case goal.DailyWordAchievement >= 100:
		suggestions = append(suggestions, "Today's study goal is complete!")
	case goal.DailyWordAchievement >= 50:
		remaining := goal.DailyWordGoal - goal.DailyWordActual
		suggestions = append(suggestions, fmt.Sprintf("%d words left to reach today's goal. Almost there!", remaining))
	default:
		suggestions = append(suggestions, "Start working toward today's study goal!")
	}

	wrong, err := s.TopWrong(ctx, suggestionTopN)
	if err != nil {
		return nil, err
	}
	if len(wrong) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Focus on the %d words you miss most often.", len(wrong)))
	}

	dist, err := s.MasteryDistribution(ctx)
	if err != nil {
		return nil, err
	}
	if low := dist[0].Count + dist[1].Count; low > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Review %d words with low mastery.", low))
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Start studying!")
	}
	return suggestions, nil
}
