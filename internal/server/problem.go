package server

import (
	"encoding/json"
	"net/http"

	"github.com/HerbHall/slidecraft/pkg/models"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type" example:"https://slidecraft.dev/problems/bad-request"`
	Title    string `json:"title" example:"Bad Request"`
	Status   int    `json:"status" example:"400"`
	Detail   string `json:"detail,omitempty" example:"invalid JSON body"`
	Instance string `json:"instance,omitempty" example:"/api/v1/exports"`
}

// NewProblem fills Type and Title from the status code.
func NewProblem(status int, detail, instance string) Problem {
	return Problem{
		Type:     models.ProblemType(status),
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, NewProblem(http.StatusInternalServerError, detail, instance))
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, NewProblem(http.StatusTooManyRequests, detail, instance))
}
