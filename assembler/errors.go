package assembler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks a malformed handler or middleware reference, or
	// an unknown verb. It is always fatal.
	ErrConfiguration = errors.New("route configuration error")
	// ErrResolution marks a reference to a controller, middleware module or
	// export that is not registered.
	ErrResolution = errors.New("route resolution error")

	errTooManySeparators = errors.New("too many separators")
	errMissingSeparator  = errors.New("missing separator")
	errEmptySegment      = errors.New("empty segment")
	errPaddedSegment     = errors.New("segment has surrounding whitespace")
	errUnknownVerb       = errors.New("unknown HTTP verb")
)

// Location names the declaration entry an error belongs to.
type Location struct {
	File string
	URI  string
	Verb string
}

func (l Location) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q", l.File)
	if l.URI != "" {
		fmt.Fprintf(&b, " at %q", l.URI)
	}
	if l.Verb != "" {
		fmt.Fprintf(&b, " (%s)", l.Verb)
	}
	return b.String()
}

// ConfigurationError reports a reference that could not be parsed.
type ConfigurationError struct {
	Location
	Reference string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("malformed reference %q in %s: %v", e.Reference, e.Location, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is reports ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ResolutionError reports a reference whose module or export is missing.
type ResolutionError struct {
	Location
	Reference string
	Module    string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %q in %s: %v", e.Reference, e.Location, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Is reports ErrResolution.
func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }
