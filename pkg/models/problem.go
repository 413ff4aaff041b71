package models

import (
	"net/http"
	"strings"
)

// ProblemTypeBase prefixes every problem type URI.
const ProblemTypeBase = "https://slidecraft.dev/problems/"

// ProblemType returns the problem type URI for an HTTP status, slugged from
// its status text: 429 becomes ".../too-many-requests".
func ProblemType(status int) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(http.StatusText(status)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return ProblemTypeBase + "unknown"
	}
	return ProblemTypeBase + b.String()
}

// APIProblem represents an RFC 7807 Problem Details response for Swagger docs.
// Handlers write the same shape with their own helpers.
type APIProblem struct {
	Type     string            `json:"type" example:"https://slidecraft.dev/problems/bad-request"`
	Title    string            `json:"title" example:"Bad Request"`
	Status   int               `json:"status" example:"400"`
	Detail   string            `json:"detail,omitempty" example:"Invalid input data"`
	Instance string            `json:"instance,omitempty" example:"/api/v1/presentations"`
	Errors   map[string]string `json:"errors,omitempty"`
}
