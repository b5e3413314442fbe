package api

import "net/http"

func (s *Server) handleTodayStats(w http.ResponseWriter, r *http.Request) {
	today, err := s.Reports.TodaySummary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, today)
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	week, err := s.Reports.WeeklySummary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, week)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	points, err := s.Reports.Trend(r.Context(), days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, points)
}

func (s *Server) handleMasteryDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := s.Reports.MasteryDistribution(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dist)
}

func (s *Server) handleTopWrong(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	words, err := s.Reports.TopWrong(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	goal, err := s.Reports.GoalAchievement(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, goal)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.Reports.StreakDays(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"streak_days": streak})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.Reports.Suggestions(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, suggestions)
}
