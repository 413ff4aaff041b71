package generate

import (
	"strings"
	"unicode/utf8"
)

// Parameter bounds.
const (
	MinAudienceLen    = 2
	MinDescriptionLen = 10
	MinSlides         = 3
	MaxSlides         = 20
	MinBulletPoints   = 1
	MaxBulletPoints   = 5
)

// Field names as they appear on the wire and in validation errors.
const (
	FieldAudience     = "audience"
	FieldDescription  = "description"
	FieldSlideCount   = "number_of_slides"
	FieldBulletPoints = "number_of_bullet_points"
)

// Request holds the user-entered generation parameters.
type Request struct {
	Audience         string `json:"audience" example:"engineering managers"`
	Description      string `json:"description" example:"An introduction to caching strategies"`
	SlideCount       int    `json:"number_of_slides" example:"5"`
	BulletPointCount *int   `json:"number_of_bullet_points,omitempty" example:"3"`
}

// FieldError is one failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation, in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, " ")
}

// Map returns the field errors keyed by field name.
func (e *ValidationError) Map() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Message
	}
	return m
}

// Validate checks the request against the parameter bounds. It returns nil
// or a *ValidationError.
func (r Request) Validate() error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	if utf8.RuneCountInString(strings.TrimSpace(r.Audience)) < MinAudienceLen {
		add(FieldAudience, "Audience must be at least 2 characters.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.Description)) < MinDescriptionLen {
		add(FieldDescription, "Description must be at least 10 characters.")
	}
	if r.SlideCount < MinSlides || r.SlideCount > MaxSlides {
		add(FieldSlideCount, "Number of slides must be between 3 and 20.")
	}
	if n := r.BulletPointCount; n != nil && (*n < MinBulletPoints || *n > MaxBulletPoints) {
		add(FieldBulletPoints, "Number of bullet points must be between 1 and 5.")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
