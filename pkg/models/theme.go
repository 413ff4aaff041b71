package models

// Theme is a named set of solid colors applied to previews and exports.
// All colors are "#RRGGBB" hex strings.
type Theme struct {
	Name       string `json:"name" example:"Corporate Slate"`
	Background string `json:"background" example:"#2d3748"`
	Accent     string `json:"accent" example:"#4a5568"`
	Text       string `json:"text" example:"#ffffff"`
}
