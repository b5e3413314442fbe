package api

import (
	"net/http"

	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/services"
)

type createExamRequest struct {
	ExamType       models.ExamType     `json:"exam_type" validate:"required,oneof=short_answer multiple_choice"`
	QuestionMode   models.QuestionMode `json:"question_mode" validate:"required,oneof=forward backward mixed"`
	TotalQuestions int                 `json:"total_questions" validate:"required,gte=1"`
	Ordering       models.Ordering     `json:"ordering" validate:"omitempty,oneof=sequential random personalized"`
	TimeLimit      *int                `json:"time_limit" validate:"omitempty,gte=0"`
}

type examAnswerRequest struct {
	Answer       string  `json:"answer"`
	Choice       *int    `json:"choice" validate:"omitempty,gte=0"`
	ResponseTime float64 `json:"response_time" validate:"gte=0"`
}

type gotoRequest struct {
	QuestionNumber int `json:"question_number" validate:"required,gte=1"`
}

func (s *Server) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	var req createExamRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.Exams.Create(r.Context(), services.ExamOptions{
		Type:           req.ExamType,
		Mode:           req.QuestionMode,
		TotalQuestions: req.TotalQuestions,
		Ordering:       req.Ordering,
		TimeLimit:      req.TimeLimit,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	question, err := s.Exams.Current()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"exam_id": id, "question": question})
}

func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, err := s.Exams.Current()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, question)
}

func (s *Server) handleExamAnswer(w http.ResponseWriter, r *http.Request) {
	var req examAnswerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.Exams.Submit(services.Answer{Text: req.Answer, Choice: req.Choice, ResponseTime: req.ResponseTime})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.examCursor())
}

func (s *Server) handleExamGoto(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Exams.Goto(req.QuestionNumber); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.examCursor())
}

// examCursor reports the next question, or completed once every question
// has been visited. Callers hold mu.
func (s *Server) examCursor() map[string]any {
	question, err := s.Exams.Current()
	if err != nil {
		return map[string]any{"completed": true}
	}
	return map[string]any{"completed": false, "question": question}
}

func (s *Server) handleFinishExam(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Exams.Finish(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleAbandonExam(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Exams.Abandon(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetExam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	detail, err := s.Exams.GetResult(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	exams, err := s.Exams.ListRecent(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, exams)
}

func (s *Server) handleListWrongNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.Exams.ListWrongNotes(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, notes)
}

func (s *Server) handleResolveWrongNote(w http.ResponseWriter, r *http.Request) {
	wordID, err := pathID(r, "wordID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Exams.ResolveWrongNote(r.Context(), wordID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
