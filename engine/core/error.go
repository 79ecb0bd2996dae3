package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error is the structured error type shared by all engine packages. It wraps
// a cause with a stable machine-readable code and optional detail fields so
// that callers can branch on Code without parsing message text.
type Error struct {
	Err     error
	Code    string
	Details map[string]any
}

// NewError creates a structured error from a cause, a code, and detail fields.
func NewError(err error, code string, details map[string]any) *Error {
	return &Error{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Details[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithContext returns the error with an additional detail field attached.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// CodeOf extracts the machine code from an error chain, or "" when the chain
// contains no structured error.
func CodeOf(err error) string {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Code
	}
	return ""
}
