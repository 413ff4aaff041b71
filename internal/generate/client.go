// Package generate submits generation parameters to the remote presentation
// service and maps its answers onto typed errors.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/HerbHall/slidecraft/internal/clientip"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

// maxResponseBytes bounds the generation response body.
const maxResponseBytes = 8 << 20

// IPResolver supplies the client address when the request context has none.
type IPResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Client talks to the generation service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	resolver   IPResolver
	logger     *zap.Logger
}

// NewClient creates a generation client. resolver may be nil.
func NewClient(cfg Config, resolver IPResolver, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		resolver:   resolver,
		logger:     logger,
	}
}

// Generate validates req and, if it passes, asks the service for a
// presentation. Invalid requests never reach the network.
func (c *Client) Generate(ctx context.Context, req Request) (*models.Presentation, error) {
	start := time.Now()
	p, err := c.generate(ctx, req)
	observe(err, time.Since(start))
	return p, err
}

func (c *Client) generate(ctx context.Context, req Request) (*models.Presentation, error) {
	if err := req.Validate(); err != nil {
		return nil, newError(KindValidation, MsgInvalidInput, 0, err)
	}

	ip := c.clientIP(ctx)

	body, err := json.Marshal(wireRequest{
		Audience:      strings.TrimSpace(req.Audience),
		Description:   strings.TrimSpace(req.Description),
		NumberSlides:  req.SlideCount,
		NumberBullets: req.BulletPointCount,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/presentation", bytes.NewReader(body))
	if err != nil {
		return nil, newError(KindTransport, MsgFailed, 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Client-IP", ip)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("generation request failed", zap.Error(err))
		return nil, newError(KindTransport, MsgFailed, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, newError(KindRateLimited, MsgRateLimited, resp.StatusCode, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, newError(KindUpstream, statusText(resp), resp.StatusCode, nil)
	}

	var out wireResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, newError(KindDecode, MsgFailed, resp.StatusCode, fmt.Errorf("decode generation response: %w", err))
	}
	if err := out.Presentation.Validate(); err != nil {
		return nil, newError(KindDecode, MsgFailed, resp.StatusCode, err)
	}

	c.logger.Info("presentation generated",
		zap.String("title", out.Presentation.Title),
		zap.Int("slides", len(out.Presentation.Slides)),
		zap.String("client_ip", ip),
	)
	return out.Presentation, nil
}

// clientIP resolves the forwarded address. Failures degrade to Unknown.
func (c *Client) clientIP(ctx context.Context) string {
	if ip, ok := clientip.FromContext(ctx); ok {
		return ip
	}
	if c.resolver != nil {
		ip, err := c.resolver.Resolve(ctx)
		if err == nil && ip != "" {
			return ip
		}
		c.logger.Debug("client ip resolution failed", zap.Error(err))
	}
	return clientip.Unknown
}

// statusText returns the reason phrase of the response status line.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// --- generation service wire types (internal) ---

type wireRequest struct {
	Audience      string `json:"audience"`
	Description   string `json:"description"`
	NumberSlides  int    `json:"number_of_slides"`
	NumberBullets *int   `json:"number_of_bullet_points,omitempty"`
}

type wireResponse struct {
	Success      bool                 `json:"success"`
	Presentation *models.Presentation `json:"presentation"`
}
