package declaration

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse marks a malformed declaration document.
	ErrParse = errors.New("declaration parse error")
	// ErrIO marks a declarations directory or file that could not be read.
	ErrIO = errors.New("declaration io error")

	errNotObject   = errors.New("document must be a JSON object")
	errInvalidJSON = errors.New("invalid JSON syntax")
)

// ParseError describes a declaration file that could not be parsed. URI and
// Verb are set when the failure is local to one entry.
type ParseError struct {
	File string
	URI  string
	Verb string
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot parse %q", e.File)
	if e.URI != "" {
		fmt.Fprintf(&b, " at %q", e.URI)
	}
	if e.Verb != "" {
		fmt.Fprintf(&b, " (%s)", e.Verb)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse so callers can classify without a type assertion.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
