// Package history persists generated presentations so they can be listed,
// previewed and exported again later.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HerbHall/slidecraft/internal/store"
	"github.com/HerbHall/slidecraft/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no presentation has the requested ID.
var ErrNotFound = errors.New("presentation not found")

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Entry is the summary of a stored presentation.
type Entry struct {
	ID         string    `json:"id" example:"7f3c2a9e-5b1d-4c8e-9a2f-1e6d3b4c5a7f"`
	Title      string    `json:"title" example:"Intro to Caching Systems"`
	Audience   string    `json:"audience" example:"Backend engineers"`
	SlideCount int       `json:"slide_count" example:"3"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store reads and writes presentations in the shared database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New migrates the history schema and returns a Store.
func New(ctx context.Context, db *store.SQLiteStore) (*Store, error) {
	if err := db.Migrate(ctx, "history", migrations()); err != nil {
		return nil, fmt.Errorf("history migrate: %w", err)
	}
	return &Store{db: db.DB(), now: time.Now}, nil
}

// Save stores p and returns its new ID.
func (s *Store) Save(ctx context.Context, audience string, p *models.Presentation) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal presentation: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presentations (id, title, audience, slide_count, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.Title, audience, len(p.Slides), string(body), s.now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert presentation: %w", err)
	}
	return id, nil
}

// Get returns the presentation with the given ID or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.Presentation, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM presentations WHERE id = ?", id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get presentation: %w", err)
	}

	var p models.Presentation
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("unmarshal presentation %s: %w", id, err)
	}
	return &p, nil
}

// List returns up to limit entries, newest first. A non-positive limit
// selects DefaultListLimit; limits above MaxListLimit are capped.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, audience, slide_count, created_at
		FROM presentations ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Audience, &e.SlideCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan presentation: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
