// Package testutil builds slide-model fixtures for tests.
package testutil

import (
	"fmt"

	"github.com/HerbHall/slidecraft/pkg/models"
)

// NewPresentation returns a three-slide presentation shaped like a
// generation service answer: labelled titles, two bullets per slide and no
// images. Override with options.
func NewPresentation(opts ...func(*models.Presentation)) *models.Presentation {
	p := &models.Presentation{Title: "Intro to Caching"}
	WithSlideCount(3)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithTitle sets the presentation title.
func WithTitle(title string) func(*models.Presentation) {
	return func(p *models.Presentation) { p.Title = title }
}

// WithSlideCount replaces the slides with n labelled slides.
func WithSlideCount(n int) func(*models.Presentation) {
	return func(p *models.Presentation) {
		p.Slides = make([]models.Slide, n)
		for i := range p.Slides {
			p.Slides[i] = models.Slide{
				Title:   fmt.Sprintf("Slide %d: Point %d", i+1, i+1),
				Content: []string{fmt.Sprintf("Point %d first", i+1), fmt.Sprintf("Point %d second", i+1)},
			}
		}
	}
}

// WithImage sets the image reference of slide i.
func WithImage(i int, ref string) func(*models.Presentation) {
	return func(p *models.Presentation) { p.Slides[i].ImageURL = ref }
}

// WithBullets replaces the bullets of slide i. No bullets leaves it empty.
func WithBullets(i int, bullets ...string) func(*models.Presentation) {
	return func(p *models.Presentation) { p.Slides[i].Content = bullets }
}
