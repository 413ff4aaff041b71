// Package clientip resolves the address of the client behind an inbound
// request, either from proxy headers or from a remote lookup endpoint.
package clientip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Unknown is forwarded when no address could be resolved.
const Unknown = "unknown"

// Headers lists the proxy headers consulted, highest precedence first.
var Headers = []string{
	"X-Client-IP",
	"X-Forwarded-For",
	"CF-Connecting-IP",
	"X-Real-IP",
	"X-Cluster-Client-IP",
	"Fly-Client-IP",
	"True-Client-IP",
	"X-Vercel-Forwarded-For",
}

// FromHeaders returns the first address found in Headers. Comma-separated
// forwarding chains yield their first hop. Returns "" when none is set.
func FromHeaders(h http.Header) string {
	for _, name := range Headers {
		v := h.Get(name)
		if v == "" {
			continue
		}
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// FromRequest returns the header-derived address, falling back to the
// host part of RemoteAddr.
func FromRequest(r *http.Request) string {
	if ip := FromHeaders(r.Header); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying ip.
func NewContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// FromContext returns the address stored by NewContext.
func FromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(ctxKey{}).(string)
	return ip, ok && ip != ""
}

// Resolver asks a remote endpoint for the caller's address. The endpoint
// must answer with a JSON object carrying an "ip" field.
type Resolver struct {
	httpClient *http.Client
	url        string
}

// NewResolver creates a Resolver for url.
func NewResolver(url string, timeout time.Duration) *Resolver {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// Resolve performs the lookup.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build ip lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ip lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<12)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode ip lookup response: %w", err)
	}
	ip := strings.TrimSpace(body.IP)
	if ip == "" {
		return "", fmt.Errorf("ip lookup: empty address")
	}
	return ip, nil
}
