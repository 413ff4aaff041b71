package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

// Reader is the read side of Store.
type Reader interface {
	Get(ctx context.Context, id string) (*models.Presentation, error)
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Handler serves the presentation history routes.
type Handler struct {
	reader Reader
	logger *zap.Logger
}

// NewHandler creates a history Handler.
func NewHandler(reader Reader, logger *zap.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

// RegisterRoutes registers history routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/presentations", h.handleList)
	mux.HandleFunc("GET /api/v1/presentations/{id}", h.handleGet)
}

// handleList returns recent presentations.
//
//	@Summary		List presentations
//	@Description	Returns the most recently generated presentations, newest first.
//	@Tags			presentations
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum entries (default 20, max 100)"
//	@Success		200		{array}		Entry
//	@Failure		400		{object}	models.APIProblem
//	@Failure		500		{object}	models.APIProblem
//	@Router			/presentations [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.reader.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list presentations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list presentations")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleGet returns one stored presentation.
//
//	@Summary		Get presentation
//	@Description	Returns the slide model of a stored presentation.
//	@Tags			presentations
//	@Produce		json
//	@Param			id	path		string	true	"Presentation ID"
//	@Success		200	{object}	models.Presentation
//	@Failure		404	{object}	models.APIProblem
//	@Failure		500	{object}	models.APIProblem
//	@Router			/presentations/{id} [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.reader.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "presentation not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load presentation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load presentation")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   models.ProblemType(status),
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
