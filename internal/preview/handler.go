package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/HerbHall/slidecraft/internal/history"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

// Source loads stored presentations.
type Source interface {
	Get(ctx context.Context, id string) (*models.Presentation, error)
}

// Handler serves slide previews of stored presentations.
type Handler struct {
	source Source
	logger *zap.Logger
}

// NewHandler creates a preview Handler.
func NewHandler(source Source, logger *zap.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// RegisterRoutes registers preview routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/presentations/{id}/slides/{index}", h.handleSlide)
}

// handleSlide returns one slide view. Out-of-range indexes are clamped.
//
//	@Summary		Preview slide
//	@Description	Returns the display view of one slide; the index is zero-based and clamped into range.
//	@Tags			presentations
//	@Produce		json
//	@Param			id		path		string	true	"Presentation ID"
//	@Param			index	path		int		true	"Zero-based slide index"
//	@Success		200		{object}	SlideView
//	@Failure		400		{object}	models.APIProblem
//	@Failure		404		{object}	models.APIProblem
//	@Router			/presentations/{id}/slides/{index} [get]
func (h *Handler) handleSlide(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "slide index must be an integer")
		return
	}

	p, err := h.source.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "presentation not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load presentation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load presentation")
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	nav := NewNavigator(len(p.Slides))
	nav.Seek(index)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(View(p, nav))
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
