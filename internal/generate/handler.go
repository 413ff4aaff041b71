package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/HerbHall/slidecraft/internal/clientip"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Generator produces a presentation from a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (*models.Presentation, error)
}

// Recorder persists a generated presentation and returns its ID.
type Recorder interface {
	Save(ctx context.Context, audience string, p *models.Presentation) (string, error)
}

// CreateResponse is the response for POST /api/v1/presentations.
type CreateResponse struct {
	ID           string               `json:"id" example:"4b1f7a52-8c1e-4a8e-9a53-1e9b8c0f6d21"`
	Presentation *models.Presentation `json:"presentation"`
}

// Handler serves the generation route.
type Handler struct {
	gen      Generator
	recorder Recorder
	gate     *inflightGate
	limiter  *ipLimiter
	logger   *zap.Logger
}

// NewHandler creates a generation Handler.
func NewHandler(gen Generator, recorder Recorder, cfg Config, logger *zap.Logger) *Handler {
	return &Handler{
		gen:      gen,
		recorder: recorder,
		gate:     newInflightGate(cfg.PerIPInflight),
		limiter:  newIPLimiter(cfg.RateLimitPerMinute),
		logger:   logger,
	}
}

// RegisterRoutes registers the generation route on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/presentations", h.handleCreate)
}

// handleCreate generates and stores a presentation.
//
//	@Summary		Generate presentation
//	@Description	Validates the parameters, forwards them to the generation service and stores the result.
//	@Tags			presentations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		Request	true	"Generation parameters"
//	@Success		201		{object}	CreateResponse
//	@Failure		400		{object}	models.APIProblem
//	@Failure		409		{object}	models.APIProblem
//	@Failure		429		{object}	models.APIProblem
//	@Failure		502		{object}	models.APIProblem
//	@Router			/presentations [post]
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Invalid requests consume no rate-limit token.
	if err := req.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	ip, ok := clientip.FromContext(r.Context())
	if !ok {
		ip = clientip.FromRequest(r)
	}

	if !h.limiter.allow(ip) {
		writeError(w, http.StatusTooManyRequests, MsgRateLimited)
		return
	}
	if !h.gate.acquire(ip) {
		writeError(w, http.StatusConflict, "a generation is already in progress for this client")
		return
	}
	defer h.gate.release(ip)

	ctx := clientip.NewContext(r.Context(), ip)
	p, err := h.gen.Generate(ctx, req)
	if err != nil {
		h.writeGenerateError(w, err)
		return
	}

	var id string
	if h.recorder != nil {
		id, err = h.recorder.Save(ctx, req.Audience, p)
		if err != nil {
			h.logger.Error("failed to store presentation", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to store presentation")
			return
		}
	}

	writeJSON(w, http.StatusCreated, CreateResponse{ID: id, Presentation: p})
}

func (h *Handler) writeGenerateError(w http.ResponseWriter, err error) {
	var ge *Error
	if !errors.As(err, &ge) {
		h.logger.Error("generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, MsgFailed)
		return
	}

	switch ge.Kind {
	case KindValidation:
		writeValidation(w, ge.Err)
	case KindRateLimited:
		writeError(w, http.StatusTooManyRequests, ge.Message)
	default:
		h.logger.Warn("generation failed",
			zap.String("kind", string(ge.Kind)),
			zap.Int("upstream_status", ge.Status),
			zap.Error(ge.Err),
		)
		writeError(w, http.StatusBadGateway, ge.Message)
	}
}

// inflightGate caps concurrent generations per client address.
type inflightGate struct {
	mu    sync.Mutex
	limit int
	count map[string]int
}

func newInflightGate(limit int) *inflightGate {
	if limit <= 0 {
		limit = 1
	}
	return &inflightGate{limit: limit, count: make(map[string]int)}
}

func (g *inflightGate) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count[key] >= g.limit {
		return false
	}
	g.count[key]++
	return true
}

func (g *inflightGate) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count[key] <= 1 {
		delete(g.count, key)
		return
	}
	g.count[key]--
}

// ipLimiter tracks per-address token buckets refilled perMinute times a minute.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &ipLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

// allow reports whether key may proceed. A nil limiter allows everything.
func (l *ipLimiter) allow(key string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= 10000 {
			cutoff := time.Now().Add(-10 * time.Minute)
			for k, old := range l.limiters {
				if old.lastSeen.Before(cutoff) {
					delete(l.limiters, k)
				}
			}
		}
		e = &limiterEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeProblem(w, status, detail, nil)
}

func writeValidation(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		writeProblem(w, http.StatusBadRequest, MsgInvalidInput, ve.Map())
		return
	}
	writeError(w, http.StatusBadRequest, MsgInvalidInput)
}

func writeProblem(w http.ResponseWriter, status int, detail string, fields map[string]string) {
	body := map[string]any{
		"type":   models.ProblemType(status),
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
