// Package theme holds the static catalogue of slide themes.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HerbHall/slidecraft/pkg/models"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownTheme is returned when a theme name is not in the registry.
var ErrUnknownTheme = errors.New("unknown theme")

// Text candidates. The one with the higher contrast ratio wins.
const (
	LightText = "#ffffff"
	DarkText  = "#111827"
)

// Definition is the authored part of a theme. The text color is derived.
type Definition struct {
	Name       string
	Background string
	Accent     string
}

// builtin mirrors the hosted product's theme picker, resolved to solid hex.
var builtin = []Definition{
	{Name: "Corporate Slate", Background: "#2d3748", Accent: "#374151"},
	{Name: "Modern Business", Background: "#3b82f6", Accent: "#4338ca"},
	{Name: "Elegant Rose", Background: "#ec4899", Accent: "#db2777"},
	{Name: "Business Green", Background: "#16a34a", Accent: "#15803d"},
	{Name: "Techno Blue", Background: "#3b82f6", Accent: "#2563eb"},
	{Name: "Classy Gold", Background: "#fbbf24", Accent: "#eab308"},
	{Name: "Sophisticated Purple", Background: "#6b21a8", Accent: "#7e22ce"},
	{Name: "Steel Gray", Background: "#4b5563", Accent: "#1e293b"},
	{Name: "Fresh Mint", Background: "#2dd4bf", Accent: "#14b8a6"},
	{Name: "Sunset Orange", Background: "#f97316", Accent: "#ea580c"},
	{Name: "Midnight Navy", Background: "#1e3a8a", Accent: "#172554"},
	{Name: "Natural Earth", Background: "#b45309", Accent: "#92400e"},
}

// Registry is an immutable, ordered set of themes keyed by name.
type Registry struct {
	themes []models.Theme
	byName map[string]int
	def    int
}

// NewRegistry validates the definitions and derives each theme's text color.
// The first definition becomes the default theme.
func NewRegistry(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("theme registry needs at least one theme")
	}

	r := &Registry{
		themes: make([]models.Theme, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("theme with background %q has empty name", d.Background)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate theme %q", name)
		}
		bg, err := normalizeHex(d.Background)
		if err != nil {
			return nil, fmt.Errorf("theme %q background: %w", name, err)
		}
		accent, err := normalizeHex(d.Accent)
		if err != nil {
			return nil, fmt.Errorf("theme %q accent: %w", name, err)
		}
		text, err := TextColorFor(bg)
		if err != nil {
			return nil, fmt.Errorf("theme %q text: %w", name, err)
		}

		r.byName[name] = len(r.themes)
		r.themes = append(r.themes, models.Theme{
			Name:       name,
			Background: bg,
			Accent:     accent,
			Text:       text,
		})
	}
	return r, nil
}

// Builtin returns the registry of built-in themes.
func Builtin() *Registry {
	r, err := NewRegistry(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin themes: %v", err))
	}
	return r
}

// All returns every theme in catalogue order.
func (r *Registry) All() []models.Theme {
	out := make([]models.Theme, len(r.themes))
	copy(out, r.themes)
	return out
}

// Default returns the default theme, the first of the catalogue unless
// WithDefault chose another.
func (r *Registry) Default() models.Theme {
	return r.themes[r.def]
}

// WithDefault returns a copy of r whose default is the named theme. An empty
// name returns r unchanged.
func (r *Registry) WithDefault(name string) (*Registry, error) {
	if strings.TrimSpace(name) == "" {
		return r, nil
	}
	i, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return &Registry{themes: r.themes, byName: r.byName, def: i}, nil
}

// Lookup finds a theme by its exact name.
func (r *Registry) Lookup(name string) (models.Theme, bool) {
	i, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return models.Theme{}, false
	}
	return r.themes[i], true
}

// Resolve is Lookup with a fallback: an empty name selects the default.
func (r *Registry) Resolve(name string) (models.Theme, error) {
	if strings.TrimSpace(name) == "" {
		return r.Default(), nil
	}
	t, ok := r.Lookup(name)
	if !ok {
		return models.Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Names returns the theme names in catalogue order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.themes))
	for i, t := range r.themes {
		names[i] = t.Name
	}
	return names
}

// TextColorFor picks LightText or DarkText, whichever contrasts more with bg.
func TextColorFor(bg string) (string, error) {
	light, err := ContrastRatio(bg, LightText)
	if err != nil {
		return "", err
	}
	dark, err := ContrastRatio(bg, DarkText)
	if err != nil {
		return "", err
	}
	if dark > light {
		return DarkText, nil
	}
	return LightText, nil
}

// ContrastRatio returns the WCAG 2.x contrast ratio between two hex colors,
// from 1 (identical) to 21 (black on white).
func ContrastRatio(a, b string) (float64, error) {
	la, err := luminance(a)
	if err != nil {
		return 0, err
	}
	lb, err := luminance(b)
	if err != nil {
		return 0, err
	}
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

func luminance(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

// normalizeHex canonicalizes a hex color to "#rrggbb" and rejects anything
// else, including style-framework tokens such as "bg-gray-800".
func normalizeHex(s string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	return c.Hex(), nil
}
