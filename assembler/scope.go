package assembler

import (
	"path"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/drblury/routeweaver/declaration"
)

// Scope is the per-document view of the configuration once the wildcard
// overrides are applied. It is a value; nothing in it is shared with the
// scope of another document.
type Scope struct {
	File           string
	ControllerBase string
	ControllerName string
	MiddlewareBase string
	URIPrefix      string
	Middleware     []string
}

var upper = cases.Upper(language.Und)

// ResolveScope applies the document's wildcard overrides on top of cfg.
// Overridden base paths are taken relative to the registry root.
func ResolveScope(doc *declaration.Document, cfg Config) Scope {
	cfg = cfg.withDefaults()

	scope := Scope{
		File:           doc.File,
		ControllerBase: cfg.ControllersPath,
		ControllerName: DefaultControllerName(doc.Name, cfg.ControllerSuffix),
		MiddlewareBase: cfg.MiddlewarePath,
	}

	g := doc.Global
	if g == nil {
		return scope
	}
	if g.ControllerPath != nil {
		scope.ControllerBase = path.Clean(*g.ControllerPath)
	}
	if g.ControllerName != nil {
		scope.ControllerName = *g.ControllerName
	}
	if g.MiddlewarePath != nil {
		scope.MiddlewareBase = path.Clean(*g.MiddlewarePath)
	}
	if g.URIPrefix != nil {
		scope.URIPrefix = *g.URIPrefix
	}
	if len(g.Middleware) > 0 {
		scope.Middleware = slices.Clone([]string(g.Middleware))
	}
	return scope
}

// DefaultControllerName upper-cases the first letter of a document name and
// appends suffix: "users" becomes "UsersController".
func DefaultControllerName(docName, suffix string) string {
	_, size := utf8.DecodeRuneInString(docName)
	return upper.String(docName[:size]) + docName[size:] + suffix
}
