package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HerbHall/slidecraft/internal/clientip"
	"go.uber.org/zap"
)

const threeSlides = `{"success": true, "presentation": {
	"title": "Intro to Caching",
	"slides": [
		{"title": "Slide 1: Overview", "content": ["What a cache is", "Why it matters"]},
		{"title": "Slide 2: Strategies", "content": ["Read-through"], "image_url": "image: https://example.com/a.png"},
		{"title": "Slide 3: Summary", "content": []}
	]}}`

type upstream struct {
	srv   *httptest.Server
	calls atomic.Int32
	last  atomic.Value // *recordedRequest
}

type recordedRequest struct {
	clientIP    string
	contentType string
	body        map[string]any
}

func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()
	u := &upstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/presentation", func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		rec := &recordedRequest{
			clientIP:    r.Header.Get("X-Client-IP"),
			contentType: r.Header.Get("Content-Type"),
		}
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		u.last.Store(rec)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	u.srv = httptest.NewServer(mux)
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) request() *recordedRequest {
	r, _ := u.last.Load().(*recordedRequest)
	return r
}

type stubResolver struct {
	ip  string
	err error
}

func (s stubResolver) Resolve(context.Context) (string, error) { return s.ip, s.err }

func newTestClient(baseURL string, resolver IPResolver) *Client {
	return NewClient(Config{BaseURL: baseURL, Timeout: 5 * time.Second}, resolver, zap.NewNop())
}

func TestGenerate_Success(t *testing.T) {
	u := newUpstream(t, http.StatusOK, threeSlides)
	c := newTestClient(u.srv.URL+"/", nil)

	req := validRequest()
	req.BulletPointCount = intPtr(3)
	ctx := clientip.NewContext(context.Background(), "203.0.113.7")

	p, err := c.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if p.Title != "Intro to Caching" || len(p.Slides) != 3 {
		t.Fatalf("presentation = %q with %d slides", p.Title, len(p.Slides))
	}
	if p.Slides[0].DisplayTitle() != "Overview" {
		t.Errorf("first slide title = %q", p.Slides[0].DisplayTitle())
	}

	rec := u.request()
	if rec == nil {
		t.Fatal("upstream saw no request")
	}
	if rec.clientIP != "203.0.113.7" {
		t.Errorf("X-Client-IP = %q", rec.clientIP)
	}
	if rec.contentType != "application/json" {
		t.Errorf("Content-Type = %q", rec.contentType)
	}
	if rec.body["audience"] != "students" {
		t.Errorf("audience = %v", rec.body["audience"])
	}
	if rec.body["number_of_slides"] != float64(5) {
		t.Errorf("number_of_slides = %v", rec.body["number_of_slides"])
	}
	if rec.body["number_of_bullet_points"] != float64(3) {
		t.Errorf("number_of_bullet_points = %v", rec.body["number_of_bullet_points"])
	}
}

func TestGenerate_OmitsUnsetBulletCount(t *testing.T) {
	u := newUpstream(t, http.StatusOK, threeSlides)
	c := newTestClient(u.srv.URL, nil)

	if _, err := c.Generate(context.Background(), validRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := u.request().body["number_of_bullet_points"]; ok {
		t.Error("number_of_bullet_points should be omitted")
	}
}

func TestGenerate_ClientIPFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		resolver IPResolver
		want     string
	}{
		{"resolver", stubResolver{ip: "198.51.100.2"}, "198.51.100.2"},
		{"resolver failure", stubResolver{err: errors.New("unreachable")}, clientip.Unknown},
		{"no resolver", nil, clientip.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUpstream(t, http.StatusOK, threeSlides)
			c := newTestClient(u.srv.URL, tt.resolver)
			if _, err := c.Generate(context.Background(), validRequest()); err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if got := u.request().clientIP; got != tt.want {
				t.Errorf("X-Client-IP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerate_ValidationSkipsNetwork(t *testing.T) {
	u := newUpstream(t, http.StatusOK, threeSlides)
	c := newTestClient(u.srv.URL, nil)

	for _, n := range []int{2, 21} {
		req := validRequest()
		req.SlideCount = n
		_, err := c.Generate(context.Background(), req)
		if !IsValidation(err) {
			t.Errorf("slides=%d: err = %v, want validation error", n, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("slides=%d: error does not wrap *ValidationError", n)
		}
	}
	if n := u.calls.Load(); n != 0 {
		t.Errorf("upstream called %d times, want 0", n)
	}
}

func TestGenerate_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		message string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"detail":"slow down"}`, IsRateLimited,
			"Too Many Requests. Please try again later after 24 hours."},
		{"server error", http.StatusInternalServerError, `boom`, IsUpstream, "Internal Server Error"},
		{"bad gateway", http.StatusBadGateway, ``, IsUpstream, "Bad Gateway"},
		{"not found", http.StatusNotFound, ``, IsUpstream, "Not Found"},
		{"undecodable", http.StatusOK, `<html>`, IsDecode, "Failed to generate presentation"},
		{"missing presentation", http.StatusOK, `{"success": true}`, IsDecode, "Failed to generate presentation"},
		{"no slides", http.StatusOK, `{"presentation": {"title": "x", "slides": []}}`, IsDecode, "Failed to generate presentation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUpstream(t, tt.status, tt.body)
			c := newTestClient(u.srv.URL, nil)

			p, err := c.Generate(context.Background(), validRequest())
			if p != nil {
				t.Error("expected nil presentation")
			}
			if !tt.check(err) {
				t.Fatalf("err = %v, wrong kind", err)
			}
			var ge *Error
			errors.As(err, &ge)
			if ge.Message != tt.message {
				t.Errorf("message = %q, want %q", ge.Message, tt.message)
			}
		})
	}
}

func TestGenerate_TransportFailure(t *testing.T) {
	u := newUpstream(t, http.StatusOK, threeSlides)
	url := u.srv.URL
	u.srv.Close()

	_, err := newTestClient(url, nil).Generate(context.Background(), validRequest())
	if !IsTransport(err) {
		t.Fatalf("err = %v, want transport error", err)
	}
	var ge *Error
	errors.As(err, &ge)
	if ge.Message != "Failed to generate presentation" {
		t.Errorf("message = %q", ge.Message)
	}
	if ge.Status != 0 {
		t.Errorf("status = %d, want 0", ge.Status)
	}
}
