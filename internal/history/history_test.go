package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/HerbHall/slidecraft/internal/store"
	"github.com/HerbHall/slidecraft/internal/testutil"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := New(context.Background(), db)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return s
}

func deck(title string, n int) *models.Presentation {
	return testutil.NewPresentation(testutil.WithTitle(title), testutil.WithSlideCount(n))
}

func TestSaveGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := testutil.NewPresentation(testutil.WithImage(2, "image: https://example.com/cache.png"))

	id, err := s.Save(ctx, "Backend engineers", in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != in.Title || len(got.Slides) != 3 {
		t.Fatalf("got %+v", got)
	}
	if got.Slides[2].ImageURL != in.Slides[2].ImageURL {
		t.Errorf("ImageURL = %q", got.Slides[2].ImageURL)
	}
	if got.Slides[0].Content[1] != "Point 1 second" {
		t.Errorf("Content = %v", got.Slides[0].Content)
	}
}

func TestSave_RejectsEmpty(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save(context.Background(), "x", &models.Presentation{Title: "Empty"}); !errors.Is(err, models.ErrNoSlides) {
		t.Errorf("err = %v, want ErrNoSlides", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := s.Save(ctx, "team", deck(title, 3)); err != nil {
			t.Fatalf("Save %s: %v", title, err)
		}
	}

	entries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].Title != "Third" || entries[2].Title != "First" {
		t.Errorf("order = %s, %s, %s", entries[0].Title, entries[1].Title, entries[2].Title)
	}
	if entries[0].SlideCount != 3 || entries[0].Audience != "team" {
		t.Errorf("entry = %+v", entries[0])
	}

	entries, err = s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2): %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len = %d, want 2", len(entries))
	}
}

func TestList_Empty(t *testing.T) {
	s := newTestStore(t)
	entries, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %v, want empty slice", entries)
	}
}

func TestHandler(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Save(context.Background(), "team", deck("Quarterly Review", 4))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	mux := http.NewServeMux()
	NewHandler(s, zap.NewNop()).RegisterRoutes(mux)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"list", "/api/v1/presentations", http.StatusOK},
		{"list limit", "/api/v1/presentations?limit=1", http.StatusOK},
		{"bad limit", "/api/v1/presentations?limit=zero", http.StatusBadRequest},
		{"negative limit", "/api/v1/presentations?limit=-3", http.StatusBadRequest},
		{"get", "/api/v1/presentations/" + id, http.StatusOK},
		{"missing", "/api/v1/presentations/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", tt.path, http.NoBody))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/presentations/"+id, http.NoBody))
	var p models.Presentation
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Title != "Quarterly Review" || len(p.Slides) != 4 {
		t.Errorf("presentation = %+v", p)
	}
}
