package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HerbHall/slidecraft/internal/history"
	"github.com/HerbHall/slidecraft/internal/theme"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

type fakeSource map[string]*models.Presentation

func (f fakeSource) Get(_ context.Context, id string) (*models.Presentation, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return nil, history.ErrNotFound
}

func newTestMux(b *recordingBuilder, source PresentationSource) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(newTestPipeline(b, &fakeImages{}), theme.Builtin(), source, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func postExport(t *testing.T, mux http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/v1/exports", bytes.NewReader(b))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func problemDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var p map[string]any
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	d, _ := p["detail"].(string)
	return d
}

func TestHandleExport_Download(t *testing.T) {
	b := &recordingBuilder{}
	mux := newTestMux(b, nil)

	w := postExport(t, mux, Request{Presentation: threeSlidePresentation(), Theme: "Classy Gold"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="Intro-to-Caching.pptx"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if w.Body.String() != "PPTX:Intro to Caching" {
		t.Errorf("body = %q", w.Body.String())
	}
	if b.slides[0].background != "#fbbf24" {
		t.Errorf("background = %q, want Classy Gold", b.slides[0].background)
	}
}

func TestHandleExport_DefaultTheme(t *testing.T) {
	b := &recordingBuilder{}
	w := postExport(t, newTestMux(b, nil), Request{Presentation: threeSlidePresentation()})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if b.slides[0].background != theme.Builtin().Default().Background {
		t.Errorf("background = %q, want default theme", b.slides[0].background)
	}
}

func TestHandleExport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		builderErr error
		body       any
		wantStatus int
		wantDetail string
	}{
		{"unknown theme", nil, Request{Presentation: threeSlidePresentation(), Theme: "Neon"},
			http.StatusBadRequest, `unknown theme: "Neon"`},
		{"no presentation", nil, Request{Theme: "Classy Gold"},
			http.StatusBadRequest, "presentation has no slides"},
		{"no slides", nil, Request{Presentation: &models.Presentation{Title: "x"}},
			http.StatusBadRequest, "presentation has no slides"},
		{"serialize", errors.New("broken"), Request{Presentation: threeSlidePresentation()},
			http.StatusInternalServerError, "Failed to export presentation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postExport(t, newTestMux(&recordingBuilder{err: tt.builderErr}, nil), tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if w.Header().Get("Content-Disposition") != "" {
				t.Error("failed export must not offer a download")
			}
			if d := problemDetail(t, w); d != tt.wantDetail {
				t.Errorf("detail = %q, want %q", d, tt.wantDetail)
			}
		})
	}
}

func TestHandleExportStored(t *testing.T) {
	source := fakeSource{"abc": threeSlidePresentation()}
	mux := newTestMux(&recordingBuilder{}, source)

	req := httptest.NewRequest("GET", "/api/v1/presentations/abc/export?theme=Midnight+Navy", http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Slide-Count") != "3" {
		t.Errorf("X-Slide-Count = %q", w.Header().Get("X-Slide-Count"))
	}

	req = httptest.NewRequest("GET", "/api/v1/presentations/missing/export", http.NoBody)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", w.Code)
	}
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Deck.pptx", `attachment; filename="Deck.pptx"`},
		{"Café-Notes.pptx", `attachment; filename*=utf-8''Caf%C3%A9-Notes.pptx`},
	}
	for _, tt := range tests {
		if got := contentDisposition(tt.name); got != tt.want {
			t.Errorf("contentDisposition(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
