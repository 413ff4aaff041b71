// Package session holds the state of one interactive Slidecraft session:
// the selected theme, the current presentation and the in-progress flags.
package session

import (
	"errors"
	"sync"

	"github.com/HerbHall/slidecraft/pkg/models"
)

// ErrBusy is returned when an operation of the same kind is already running.
var ErrBusy = errors.New("operation already in progress")

// State is safe for concurrent use. The zero value is not usable; call New.
type State struct {
	mu           sync.Mutex
	theme        models.Theme
	presentation *models.Presentation
	generating   bool
	exporting    bool
}

// New returns a State with the given initial theme and no presentation.
func New(initial models.Theme) *State {
	return &State{theme: initial}
}

// Theme returns the selected theme.
func (s *State) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme selects t for subsequent previews and exports.
func (s *State) SetTheme(t models.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
}

// Presentation returns the current presentation, or nil.
func (s *State) Presentation() *models.Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presentation
}

// SetPresentation replaces the current presentation wholesale.
func (s *State) SetPresentation(p *models.Presentation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presentation = p
}

// BeginGenerate marks a generation as running. It returns ErrBusy if one
// already is.
func (s *State) BeginGenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return ErrBusy
	}
	s.generating = true
	return nil
}

// EndGenerate clears the generation flag.
func (s *State) EndGenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
}

// Generating reports whether a generation is running.
func (s *State) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// BeginExport marks an export as running. It returns ErrBusy if one already
// is.
func (s *State) BeginExport() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return ErrBusy
	}
	s.exporting = true
	return nil
}

// EndExport clears the export flag.
func (s *State) EndExport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exporting = false
}

// Exporting reports whether an export is running.
func (s *State) Exporting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporting
}
