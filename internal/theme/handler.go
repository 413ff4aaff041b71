package theme

import (
	"encoding/json"
	"net/http"

	"github.com/HerbHall/slidecraft/pkg/models"
)

// ListResponse is the response for GET /api/v1/themes.
type ListResponse struct {
	Default string         `json:"default" example:"Corporate Slate"`
	Themes  []models.Theme `json:"themes"`
}

// Handler serves the theme catalogue.
type Handler struct {
	registry *Registry
}

// NewHandler creates a theme Handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes registers theme routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/themes", h.handleList)
}

// handleList returns all themes.
//
//	@Summary		List themes
//	@Description	Returns the theme catalogue with solid hex colors.
//	@Tags			themes
//	@Produce		json
//	@Success		200	{object}	ListResponse
//	@Router			/themes [get]
func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ListResponse{
		Default: h.registry.Default().Name,
		Themes:  h.registry.All(),
	})
}
