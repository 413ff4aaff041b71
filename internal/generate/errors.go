package generate

import "errors"

// Kind classifies a generation failure.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindRateLimited Kind = "rate_limited"
	KindUpstream    Kind = "upstream"
	KindTransport   Kind = "transport"
	KindDecode      Kind = "decode"
)

// User-facing messages.
const (
	MsgInvalidInput = "Invalid input data"
	MsgRateLimited  = "Too Many Requests. Please try again later after 24 hours."
	MsgFailed       = "Failed to generate presentation"
)

// Error is a typed generation failure.
// Use the IsXxx helpers below to classify errors without inspecting fields.
type Error struct {
	Kind    Kind
	Message string // Shown to the user as-is.
	Status  int    // Upstream HTTP status, 0 when no response was received.
	Err     error  // Underlying error (may be nil).
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, status int, err error) *Error {
	return &Error{Kind: kind, Message: message, Status: status, Err: err}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return hasKind(err, KindValidation) }

// IsRateLimited reports whether the generation service refused with 429.
func IsRateLimited(err error) bool { return hasKind(err, KindRateLimited) }

// IsUpstream reports whether the generation service answered with an error status.
func IsUpstream(err error) bool { return hasKind(err, KindUpstream) }

// IsTransport reports whether the request never produced a response.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

// IsDecode reports whether a successful response carried no usable presentation.
func IsDecode(err error) bool { return hasKind(err, KindDecode) }

func hasKind(err error, kind Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}
