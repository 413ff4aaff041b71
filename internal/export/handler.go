package export

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/HerbHall/slidecraft/internal/history"
	"github.com/HerbHall/slidecraft/internal/theme"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

// ThemeResolver maps a theme name onto a theme. Empty selects the default.
type ThemeResolver interface {
	Resolve(name string) (models.Theme, error)
}

// PresentationSource loads stored presentations.
type PresentationSource interface {
	Get(ctx context.Context, id string) (*models.Presentation, error)
}

// Request is the body of POST /api/v1/exports.
type Request struct {
	Presentation *models.Presentation `json:"presentation"`
	Theme        string               `json:"theme" example:"Corporate Slate"`
}

// Handler serves the export routes.
type Handler struct {
	pipeline *Pipeline
	themes   ThemeResolver
	source   PresentationSource
	logger   *zap.Logger
}

// NewHandler creates an export Handler. source may be nil, which disables
// exporting stored presentations.
func NewHandler(pipeline *Pipeline, themes ThemeResolver, source PresentationSource, logger *zap.Logger) *Handler {
	return &Handler{pipeline: pipeline, themes: themes, source: source, logger: logger}
}

// RegisterRoutes registers export routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/exports", h.handleExport)
	if h.source != nil {
		mux.HandleFunc("GET /api/v1/presentations/{id}/export", h.handleExportStored)
	}
}

// handleExport renders the posted presentation.
//
//	@Summary		Export presentation
//	@Description	Renders a presentation with the selected theme and returns the .pptx file.
//	@Tags			exports
//	@Accept			json
//	@Produce		application/vnd.openxmlformats-officedocument.presentationml.presentation
//	@Param			request	body		Request	true	"Presentation and theme"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	models.APIProblem
//	@Failure		500		{object}	models.APIProblem
//	@Router			/exports [post]
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 32<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.render(w, r, req.Presentation, req.Theme)
}

// handleExportStored renders a stored presentation.
//
//	@Summary		Export stored presentation
//	@Description	Renders a previously generated presentation and returns the .pptx file.
//	@Tags			exports
//	@Produce		application/vnd.openxmlformats-officedocument.presentationml.presentation
//	@Param			id		path		string	true	"Presentation ID"
//	@Param			theme	query		string	false	"Theme name"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	models.APIProblem
//	@Failure		404		{object}	models.APIProblem
//	@Failure		500		{object}	models.APIProblem
//	@Router			/presentations/{id}/export [get]
func (h *Handler) handleExportStored(w http.ResponseWriter, r *http.Request) {
	pres, err := h.source.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "presentation not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load presentation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load presentation")
		return
	}
	h.render(w, r, pres, r.URL.Query().Get("theme"))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, pres *models.Presentation, themeName string) {
	if err := pres.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "presentation has no slides")
		return
	}

	th, err := h.themes.Resolve(themeName)
	if errors.Is(err, theme.ErrUnknownTheme) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve theme")
		return
	}

	a, err := h.pipeline.Export(r.Context(), pres, th)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export presentation")
		return
	}
	writeArtifact(w, a)
}

// writeArtifact sends a as a file download.
func writeArtifact(w http.ResponseWriter, a *Artifact) {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(a.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Header().Set("X-Slide-Count", strconv.Itoa(a.SlideCount))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}

// contentDisposition quotes plain ASCII names and falls back to the RFC 2231
// extended form for everything else.
func contentDisposition(name string) string {
	plain := !strings.ContainsAny(name, "\"\\")
	for _, r := range name {
		if r < 0x20 || r > 0x7e {
			plain = false
			break
		}
	}
	if plain {
		return `attachment; filename="` + name + `"`
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
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
