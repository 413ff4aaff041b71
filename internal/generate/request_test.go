package generate

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func validRequest() Request {
	return Request{
		Audience:    "students",
		Description: "An overview of distributed caching",
		SlideCount:  5,
	}
}

func TestRequestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Request)
	}{
		{"defaults", func(*Request) {}},
		{"min slides", func(r *Request) { r.SlideCount = 3 }},
		{"max slides", func(r *Request) { r.SlideCount = 20 }},
		{"bullets set", func(r *Request) { r.BulletPointCount = intPtr(5) }},
		{"two rune audience", func(r *Request) { r.Audience = "日本" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mod(&r)
			if err := r.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestRequestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*Request)
		field   string
		message string
	}{
		{"short audience", func(r *Request) { r.Audience = "a" }, FieldAudience, "Audience must be at least 2 characters."},
		{"padded audience", func(r *Request) { r.Audience = "  a  " }, FieldAudience, "Audience must be at least 2 characters."},
		{"short description", func(r *Request) { r.Description = "too short" }, FieldDescription, "Description must be at least 10 characters."},
		{"two slides", func(r *Request) { r.SlideCount = 2 }, FieldSlideCount, "Number of slides must be between 3 and 20."},
		{"21 slides", func(r *Request) { r.SlideCount = 21 }, FieldSlideCount, "Number of slides must be between 3 and 20."},
		{"zero bullets", func(r *Request) { r.BulletPointCount = intPtr(0) }, FieldBulletPoints, "Number of bullet points must be between 1 and 5."},
		{"six bullets", func(r *Request) { r.BulletPointCount = intPtr(6) }, FieldBulletPoints, "Number of bullet points must be between 1 and 5."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mod(&r)
			err := r.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate = %v, want *ValidationError", err)
			}
			if got := ve.Map()[tt.field]; got != tt.message {
				t.Errorf("message for %s = %q, want %q", tt.field, got, tt.message)
			}
			if len(ve.Fields) != 1 {
				t.Errorf("got %d field errors, want 1", len(ve.Fields))
			}
		})
	}
}

func TestRequestValidate_ReportsAllFields(t *testing.T) {
	err := Request{}.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate = %v, want *ValidationError", err)
	}
	want := []string{FieldAudience, FieldDescription, FieldSlideCount}
	if len(ve.Fields) != len(want) {
		t.Fatalf("got %d field errors, want %d", len(ve.Fields), len(want))
	}
	for i, f := range want {
		if ve.Fields[i].Field != f {
			t.Errorf("Fields[%d] = %q, want %q", i, ve.Fields[i].Field, f)
		}
	}
}
