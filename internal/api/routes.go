package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/words", func(r chi.Router) {
			r.Get("/", s.handleListWords)
			r.Post("/", s.handleCreateWord)
			r.Post("/import", s.handleImportWords)
			r.Get("/export", s.handleExportWords)
			r.Get("/{id}", s.handleGetWord)
			r.Put("/{id}", s.handleUpdateWord)
			r.Delete("/{id}", s.handleDeleteWord)
			r.Post("/{id}/favorite", s.handleSetFavorite)
			r.Get("/{id}/stats", s.handleWordStats)
		})

		r.Route("/study", func(r chi.Router) {
			r.Post("/start", s.handleStartStudy)
			r.Get("/current", s.handleCurrentCard)
			r.Post("/answer", s.handleStudyAnswer)
			r.Post("/skip", s.handleStudySkip)
			r.Get("/progress", s.handleStudyProgress)
			r.Post("/end", s.handleEndStudy)
		})

		r.Route("/exams", func(r chi.Router) {
			r.Post("/", s.handleCreateExam)
			r.Get("/", s.handleListExams)
			r.Get("/current", s.handleCurrentQuestion)
			r.Post("/current/answer", s.handleExamAnswer)
			r.Post("/current/goto", s.handleExamGoto)
			r.Post("/current/finish", s.handleFinishExam)
			r.Post("/current/abandon", s.handleAbandonExam)
			r.Get("/{id}", s.handleGetExam)
		})

		r.Get("/wrong-notes", s.handleListWrongNotes)
		r.Post("/wrong-notes/{wordID}/resolve", s.handleResolveWrongNote)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/today", s.handleTodayStats)
			r.Get("/weekly", s.handleWeeklyStats)
			r.Get("/trend", s.handleTrend)
			r.Get("/mastery", s.handleMasteryDistribution)
			r.Get("/top-wrong", s.handleTopWrong)
			r.Get("/goals", s.handleGoals)
			r.Get("/streak", s.handleStreak)
			r.Get("/suggestions", s.handleSuggestions)
		})

		r.Get("/settings", s.handleListSettings)
		r.Put("/settings/{key}", s.handleSetSetting)
		r.Post("/settings/{key}/reset", s.handleResetSetting)

		r.Post("/backup", s.handleBackup)
	})
	return r
}
