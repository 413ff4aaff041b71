package models

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoSlides is returned when a presentation carries no slides.
var ErrNoSlides = errors.New("presentation has no slides")

// ImageKind classifies where a slide image comes from.
type ImageKind string

const (
	ImageNone     ImageKind = "none"
	ImageEmbedded ImageKind = "embedded" // data: URI carrying the image bytes
	ImageRemote   ImageKind = "remote"   // anything else, fetched by path/URL
)

// Slide is one entry of the slide model.
type Slide struct {
	Title    string   `json:"title" example:"Slide 1: Overview"`
	Content  []string `json:"content"`
	ImageURL string   `json:"image_url,omitempty" example:"image: https://images.unsplash.com/photo-1"`
}

// Presentation is a title plus an ordered, non-empty list of slides.
type Presentation struct {
	Title  string  `json:"title" example:"Intro to Caching Systems"`
	Slides []Slide `json:"slides"`
}

// Validate reports whether the presentation can be previewed or exported.
func (p *Presentation) Validate() error {
	if p == nil || len(p.Slides) == 0 {
		return ErrNoSlides
	}
	return nil
}

// FileName derives the download name from the title: every whitespace run
// becomes a single hyphen and ext is appended. Path separators and other
// characters illegal in file names become hyphens and leading dots are
// dropped, so the result is always a single path element.
func (p *Presentation) FileName(ext string) string {
	base := strings.Join(strings.Fields(p.Title), "-")
	base = strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '-'
		}
		return r
	}, base)
	base = strings.TrimLeft(base, ".")
	if base == "" {
		base = "presentation"
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}

// Repeated labels are consumed together so stripping stays idempotent.
var slidePrefix = regexp.MustCompile(`^(?:Slide\s*\d+:\s*)+`)

// StripSlidePrefix removes a leading "Slide <N>: " label from a title.
// Titles without the label are returned unchanged.
func StripSlidePrefix(title string) string {
	return slidePrefix.ReplaceAllString(title, "")
}

// DisplayTitle is the title shown in previews and written to exported files.
func (s Slide) DisplayTitle() string {
	return StripSlidePrefix(s.Title)
}

var imageMarker = regexp.MustCompile(`^image:\s*`)

// ImageRef returns the usable image reference with any "image: " marker
// removed. An empty string means the slide has no image.
func (s Slide) ImageRef() string {
	return strings.TrimSpace(imageMarker.ReplaceAllString(strings.TrimSpace(s.ImageURL), ""))
}

// HasImage reports whether the slide carries an image reference.
func (s Slide) HasImage() bool {
	return s.ImageRef() != ""
}

// ClassifyImage reports whether ref is an embedded data URI or a remote path.
func ClassifyImage(ref string) ImageKind {
	switch {
	case ref == "":
		return ImageNone
	case strings.HasPrefix(strings.ToLower(ref), "data:"):
		return ImageEmbedded
	default:
		return ImageRemote
	}
}
