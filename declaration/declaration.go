package declaration

import (
	"fmt"
	"path"
	"strings"

	"github.com/drblury/routeweaver/jsonutil"
)

const (
	// Extension is the only file extension Load treats as a declaration.
	Extension = ".json"
	// Wildcard is the reserved top-level key holding document overrides.
	Wildcard = "*"
)

// StringList holds a middleware reference that may be written either as a
// single string or as an array of strings. A nil StringList means the field
// was absent.
type StringList []string

// UnmarshalJSON accepts a string, an array of strings, or null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*l = nil
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var single string
		if err := jsonutil.Unmarshal(data, &single); err != nil {
			return err
		}
		*l = StringList{single}
		return nil
	case strings.HasPrefix(trimmed, "["):
		var many []string
		if err := jsonutil.Unmarshal(data, &many); err != nil {
			return fmt.Errorf("middleware list must contain only strings: %w", err)
		}
		if many == nil {
			many = []string{}
		}
		*l = StringList(many)
		return nil
	default:
		return fmt.Errorf("middleware must be a string or an array of strings, got %s", trimmed)
	}
}

// VerbConfig is the declaration for a single (URI, verb) pair. An empty
// Handler means the reference was omitted.
type VerbConfig struct {
	Handler    string     `json:"handler"`
	Middleware StringList `json:"middleware"`
}

// Global carries the overrides found under the wildcard key. Pointer fields
// are nil when the key was not present in the document.
type Global struct {
	ControllerPath *string    `json:"controllerPath"`
	ControllerName *string    `json:"controllerName"`
	MiddlewarePath *string    `json:"middlewarePath"`
	URIPrefix      *string    `json:"URIPrefix"`
	Middleware     StringList `json:"middleware"`
}

// Verb is one declared HTTP verb of a route, in declaration order.
type Verb struct {
	Method string
	Config VerbConfig
}

// Route is one declared URI pattern with its verbs in declaration order.
type Route struct {
	URI   string
	Verbs []Verb
}

// Document is a parsed declaration file. Routes never contain the wildcard
// entry; it is exposed through Global instead.
type Document struct {
	// Name is the file base name up to the first dot ("users" for
	// users.json). It seeds the default controller name.
	Name   string
	File   string
	Global *Global
	Routes []Route
}

// DocumentName derives a document identity from its file name.
func DocumentName(file string) string {
	name, _, _ := strings.Cut(path.Base(file), ".")
	return name
}
