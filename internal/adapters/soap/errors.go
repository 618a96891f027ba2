package soap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode/utf8"
)

// ErrNoResult means the service answered with a well-formed {op}Response
// that carries no {op}Result element, or an empty one on a single-value
// read. It is a valid negative outcome.
var ErrNoResult = errors.New("soap: no result")

// TransportError wraps failures that happen before an HTTP status is known.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("soap %s: service unreachable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline rather than a refusal.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// StatusError is a non-200 answer. Body is kept raw and never parsed.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("soap %s: remote status %d: %s", e.Op, e.Code, truncate(strings.TrimSpace(e.Body), 256))
}

// ParseError covers malformed XML and envelopes missing Body or {op}Response.
type ParseError struct {
	Op  string
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("soap %s: malformed response: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("soap %s: malformed response: %s", e.Op, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FaultError is a SOAP Fault returned inside a 200 envelope.
type FaultError struct {
	Op     string
	Code   string
	Reason string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("soap %s: fault %s: %s", e.Op, e.Code, e.Reason)
}

// Issue records one leaf that could not be coerced and fell back to its default.
type Issue struct {
	Field string
	Text  string
	Kind  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s=%q is not a valid %s", i.Field, i.Text, i.Kind)
}

// DecodeError is only returned by clients built WithStrict(true).
type DecodeError struct {
	Op     string
	Issues []Issue
}

func (e *DecodeError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.String())
	}
	return fmt.Sprintf("soap %s: decode: %s", e.Op, strings.Join(parts, "; "))
}

func IsNoResult(err error) bool { return errors.Is(err, ErrNoResult) }

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
