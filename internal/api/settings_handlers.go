package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type settingRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Settings.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

func (s *Server) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	setting, err := s.Settings.Set(r.Context(), chi.URLParam(r, "key"), req.Value)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, setting)
}

func (s *Server) handleResetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := s.Settings.Reset(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, setting)
}
