// Package preview shows a presentation one slide at a time, as data over
// HTTP and as a themed terminal view.
package preview

import (
	"fmt"

	"github.com/HerbHall/slidecraft/pkg/models"
)

// Navigator tracks the current slide of a presentation with n slides.
// The index is zero-based and always within [0, n-1].
type Navigator struct {
	index int
	total int
}

// NewNavigator returns a Navigator positioned on the first of total slides.
func NewNavigator(total int) *Navigator {
	return &Navigator{total: total}
}

// Index returns the zero-based current slide.
func (n *Navigator) Index() int { return n.index }

// Total returns the number of slides.
func (n *Navigator) Total() int { return n.total }

// Next advances one slide. It is a no-op on the last slide.
func (n *Navigator) Next() {
	if n.index < n.total-1 {
		n.index++
	}
}

// Prev goes back one slide. It is a no-op on the first slide.
func (n *Navigator) Prev() {
	if n.index > 0 {
		n.index--
	}
}

// Seek moves to i, clamped into range.
func (n *Navigator) Seek(i int) {
	n.index = Clamp(i, n.total)
}

// AtStart reports whether the first slide is shown.
func (n *Navigator) AtStart() bool { return n.index == 0 }

// AtEnd reports whether the last slide is shown.
func (n *Navigator) AtEnd() bool { return n.total == 0 || n.index == n.total-1 }

// Position returns the one-based position label, e.g. "Slide 2 of 5".
func (n *Navigator) Position() string {
	if n.total == 0 {
		return "Slide 0 of 0"
	}
	return fmt.Sprintf("Slide %d of %d", n.index+1, n.total)
}

// Clamp returns i limited to [0, total-1], or 0 when total is zero.
func Clamp(i, total int) int {
	switch {
	case total <= 0 || i < 0:
		return 0
	case i >= total:
		return total - 1
	default:
		return i
	}
}

// SlideView is what the preview displays for one slide.
type SlideView struct {
	Index    int      `json:"index" example:"0"`
	Total    int      `json:"total" example:"3"`
	Position string   `json:"position" example:"Slide 1 of 3"`
	Title    string   `json:"title" example:"Overview"`
	Bullets  []string `json:"bullets"`
	Image    string   `json:"image,omitempty" example:"https://images.unsplash.com/photo-1"`
}

// View returns the slide at the navigator's index. The title is the same
// display title the exporter writes.
func View(p *models.Presentation, nav *Navigator) SlideView {
	s := p.Slides[nav.Index()]
	bullets := s.Content
	if bullets == nil {
		bullets = []string{}
	}
	return SlideView{
		Index:    nav.Index(),
		Total:    nav.Total(),
		Position: nav.Position(),
		Title:    s.DisplayTitle(),
		Bullets:  bullets,
		Image:    s.ImageRef(),
	}
}
