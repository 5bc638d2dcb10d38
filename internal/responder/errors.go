package responder

import (
	"errors"
	"fmt"
)

// ErrorMarker prefixes every failure rendered as answer text.
const ErrorMarker = "Error:"

// Fixed answers for replies that carry no usable text.
const (
	NoCandidatesMessage = "No answer found (no candidates)"
	EmptyContentMessage = "No answer found (empty content)"
)

// Kind classifies a responder failure.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindHTTPStatus
	KindEmptyCandidates
	KindEmptyContent
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport_failure"
	case KindHTTPStatus:
		return "http_status_failure"
	case KindEmptyCandidates:
		return "empty_candidates"
	case KindEmptyContent:
		return "empty_content"
	case KindParse:
		return "parse_failure"
	default:
		return "unknown"
	}
}

// Error is the structured form of a failed call. Text renders it for display.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	return e.Text()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Text renders the error as a single human-readable answer string.
func (e *Error) Text() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("%s request failed -> %s", ErrorMarker, causeText(e.Err))
	case KindHTTPStatus:
		return fmt.Sprintf("%s %d -> %s", ErrorMarker, e.StatusCode, e.Body)
	case KindEmptyCandidates:
		return NoCandidatesMessage
	case KindEmptyContent:
		return EmptyContentMessage
	case KindParse:
		return fmt.Sprintf("%s failed to parse response -> %s", ErrorMarker, causeText(e.Err))
	default:
		return fmt.Sprintf("%s %s", ErrorMarker, causeText(e.Err))
	}
}

func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// IsKind reports whether err is (or wraps) a responder Error of kind.
func IsKind(err error, kind Kind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// KindOf returns the Kind of err, or 0 if err is not a responder Error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

// Render turns any error into answer text.
func Render(err error) string {
	if err == nil {
		return ""
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Text()
	}
	return fmt.Sprintf("%s %v", ErrorMarker, err)
}
