package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/wordio"
	"github.com/vytor/vocabflash/internal/worker"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
	maxUploadBytes  = 10 << 20
)

type wordRequest struct {
	SourceText string `json:"source_text" validate:"required,max=500"`
	TargetText string `json:"target_text" validate:"required,max=500"`
	Memo       string `json:"memo" validate:"max=2000"`
}

type favoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

type wordListResponse struct {
	Words []models.WordWithStats `json:"words"`
	Total int                    `json:"total"`
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	favoritesOnly, _ := strconv.ParseBool(q.Get("favorite"))

	filter := models.WordFilter{
		Query:         q.Get("q"),
		FavoritesOnly: favoritesOnly,
		Limit:         min(max(limit, 1), maxPageSize),
		Offset:        offset,
		OrderBy:       q.Get("order_by"),
		OrderDir:      q.Get("order_dir"),
	}
	words, total, err := s.Words.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, wordListResponse{Words: words, Total: total})
}

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	word, err := s.Words.Create(r.Context(), models.Word{SourceText: req.SourceText, TargetText: req.TargetText, Memo: req.Memo})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, word)
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	word, err := s.Words.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	word, err := s.Words.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	stats := word.Stats
	if stats == nil {
		stats = &models.WordStatistics{WordID: id}
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleUpdateWord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req wordRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	word, err := s.Words.Update(r.Context(), models.Word{ID: id, SourceText: req.SourceText, TargetText: req.TargetText, Memo: req.Memo})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Words.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req favoriteRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Words.SetFavorite(r.Context(), id, *req.Favorite); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"id": id, "is_favorite": *req.Favorite})
}

// handleImportWords parses an uploaded CSV or XLSX file and queues the rows
// for import. The format comes from ?format= or the file extension.
func (s *Server) handleImportWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = filepath.Ext(header.Filename)
	}
	format, err := wordio.ParseFormat(formatName)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}

	words, err := wordio.Read(format, file)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}
	if len(words) == 0 {
		handleError(w, r, errors.NewValidationError("file", "contains no words"))
		return
	}

	if err := s.Jobs.EnqueueImport(header.Filename, words); err != nil {
		handleError(w, r, queueError(err))
		return
	}
	log.Info("queued import: file=%s, rows=%d", header.Filename, len(words))
	writeJSON(w, r, http.StatusAccepted, map[string]any{"queued": len(words), "source": header.Filename})
}

func (s *Server) handleExportWords(w http.ResponseWriter, r *http.Request) {
	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(wordio.CSV)
	}
	format, err := wordio.ParseFormat(formatName)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}

	words, err := s.Words.Export(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("vocabflash-%s.%s", time.Now().Format("20060102"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := wordio.Write(format, w, words); err != nil {
		logger.FromContext(r.Context()).Error("failed to write export: %v", err)
	}
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if err := s.Jobs.EnqueueBackup(); err != nil {
		handleError(w, r, queueError(err))
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
}

func queueError(err error) error {
	if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
		return errors.NewBusyError(err)
	}
	return errors.NewInternalError(err)
}
