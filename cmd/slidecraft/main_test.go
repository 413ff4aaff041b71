package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HerbHall/slidecraft/internal/config"
	"github.com/HerbHall/slidecraft/internal/history"
	"github.com/HerbHall/slidecraft/internal/testutil"
)

func TestThemeRegistry_ConfiguredDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.Export.DefaultTheme = "Midnight Navy"
	if got := themeRegistry(cfg).Default().Name; got != "Midnight Navy" {
		t.Errorf("default = %q, want Midnight Navy", got)
	}

	cfg.Export.DefaultTheme = ""
	if themeRegistry(cfg).Default().Name == "" {
		t.Error("empty default theme name should fall back to the built-in default")
	}
}

func TestWriteThemes_MarksConfiguredDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.Export.DefaultTheme = "Midnight Navy"

	var buf bytes.Buffer
	writeThemes(&buf, themeRegistry(cfg))

	var marked []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.HasPrefix(line, "*") {
			marked = append(marked, line)
		}
	}
	if len(marked) != 1 || !strings.HasPrefix(marked[0], "* Midnight Navy") {
		t.Errorf("marked lines = %q, want only Midnight Navy", marked)
	}
}

func TestGenerationResolver(t *testing.T) {
	var hits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.9"}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	if r := generationResolver(cfg); r != nil {
		t.Fatalf("resolver = %v, want nil without any lookup URL", r)
	}

	cfg.Generation.DeployedURL = srv.URL + "/"
	ip, err := generationResolver(cfg).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ip != "203.0.113.9" {
		t.Errorf("ip = %q", ip)
	}

	cfg.ClientIP.LookupURL = srv.URL + "/whoami"
	if _, err := generationResolver(cfg).Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := []string{"/api/ip", "/whoami"}
	if len(hits) != len(want) || hits[0] != want[0] || hits[1] != want[1] {
		t.Errorf("paths = %v, want %v", hits, want)
	}
}

func TestOpenHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "slidecraft.db")

	db, hist, err := openHistory(ctx, path)
	if err != nil {
		t.Fatalf("openHistory: %v", err)
	}
	id, err := hist.Save(ctx, "Engineers", testutil.NewPresentation(testutil.WithSlideCount(2)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	db.Close()

	db, hist, err = openHistory(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if _, err := hist.Get(ctx, id); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
	if _, err := hist.Get(ctx, "missing"); !errors.Is(err, history.ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}
