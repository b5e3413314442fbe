package api

import (
	"net/http"

	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/services"
)

type startStudyRequest struct {
	Direction     models.Direction `json:"direction" validate:"omitempty,oneof=forward backward"`
	Ordering      models.Ordering  `json:"ordering" validate:"omitempty,oneof=sequential random personalized"`
	FavoritesOnly bool             `json:"favorites_only"`
	WordLimit     int              `json:"word_limit" validate:"gte=0"`
}

type studyAnswerRequest struct {
	Answer       string  `json:"answer"`
	ResponseTime float64 `json:"response_time" validate:"gte=0"`
}

func (s *Server) handleStartStudy(w http.ResponseWriter, r *http.Request) {
	var req startStudyRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	opts := services.StartOptions{
		Direction:     req.Direction,
		Ordering:      req.Ordering,
		FavoritesOnly: req.FavoritesOnly,
		WordLimit:     req.WordLimit,
	}
	if opts.Direction == "" {
		opts.Direction = models.Forward
	}
	if opts.Ordering == "" {
		opts.Ordering = models.Personalized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.Study.Start(r.Context(), opts)
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.Study.Current()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"total": total, "card": card})
}

func (s *Server) handleCurrentCard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.Study.Current()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleStudyAnswer(w http.ResponseWriter, r *http.Request) {
	var req studyAnswerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Study.Submit(r.Context(), req.Answer, req.ResponseTime)
	if err != nil {
		handleError(w, r, err)
		return
	}
	hasNext, err := s.Study.HasNext()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"result": result, "has_next": hasNext})
}

func (s *Server) handleStudySkip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Study.Skip(); err != nil {
		handleError(w, r, err)
		return
	}
	hasNext, err := s.Study.HasNext()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"has_next": hasNext})
}

func (s *Server) handleStudyProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.Study.Progress()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress)
}

func (s *Server) handleEndStudy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary, err := s.Study.End(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
