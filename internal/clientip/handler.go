package clientip

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

// Lookup resolves the caller's address when no proxy header carries it.
type Lookup interface {
	Resolve(ctx context.Context) (string, error)
}

// Response is the body of GET /api/ip.
type Response struct {
	IP string `json:"ip" example:"203.0.113.7"`
}

// Handler serves the inbound address endpoint.
type Handler struct {
	lookup Lookup
	logger *zap.Logger
}

// NewHandler creates a Handler. lookup may be nil.
func NewHandler(lookup Lookup, logger *zap.Logger) *Handler {
	return &Handler{lookup: lookup, logger: logger}
}

// RegisterRoutes registers the address route on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ip", h.handleIP)
}

// handleIP reports the caller's address. It lives outside /api/v1 and is
// not part of the versioned API docs.
func (h *Handler) handleIP(w http.ResponseWriter, r *http.Request) {
	if ip := FromHeaders(r.Header); ip != "" {
		writeJSON(w, http.StatusOK, Response{IP: ip})
		return
	}

	if h.lookup != nil {
		ip, err := h.lookup.Resolve(r.Context())
		if err == nil {
			writeJSON(w, http.StatusOK, Response{IP: ip})
			return
		}
		h.logger.Warn("ip lookup failed", zap.Error(err))
	}

	writeError(w, http.StatusNotFound, "IP not found")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
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
