package api

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure. Handlers branch on the kind, never on
// status codes or error strings.
type Kind string

const (
	// KindTransport - Joplin unreachable or the request timed out. The
	// dominant failure mode: the desktop app simply is not running.
	KindTransport Kind = "transport"
	// KindAuth - the API token was rejected (401/403).
	KindAuth Kind = "auth"
	// KindSchema - a 500 caused by requesting a field the Joplin storage
	// schema does not define. A defect in this program, not in Joplin.
	KindSchema Kind = "schema"
	// KindValidation - malformed input, rejected locally or with a 400.
	KindValidation Kind = "validation"
	// KindNotFound - the referenced entity does not exist (404).
	KindNotFound Kind = "not_found"
	// KindPaginationLimit - the page ceiling was hit with has_more still
	// true, which means the upstream cursor never terminates.
	KindPaginationLimit Kind = "pagination_limit"
	// KindUpstream - any other non-2xx response.
	KindUpstream Kind = "upstream"
)

// Error is the gateway's failure type.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when the request never completed
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, status int, format string, v ...any) *Error {
	return &Error{Kind: kind, Status: status, Message: fmt.Sprintf(format, v...)}
}

// ErrKind returns the classification of err, or "" if err did not originate
// in this package.
func ErrKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsTransport(err error) bool       { return ErrKind(err) == KindTransport }
func IsAuth(err error) bool            { return ErrKind(err) == KindAuth }
func IsSchema(err error) bool          { return ErrKind(err) == KindSchema }
func IsValidation(err error) bool      { return ErrKind(err) == KindValidation }
func IsNotFound(err error) bool        { return ErrKind(err) == KindNotFound }
func IsPaginationLimit(err error) bool { return ErrKind(err) == KindPaginationLimit }
func IsUpstream(err error) bool        { return ErrKind(err) == KindUpstream }
