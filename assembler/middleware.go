package assembler

import (
	"path"
	"slices"
	"strings"

	"github.com/drblury/routeweaver/declaration"
	"github.com/drblury/routeweaver/registry"
	"github.com/drblury/routeweaver/router"
)

const middlewareSeparator = "."

// MiddlewareRef is a parsed "module.function" reference. Relative modules
// start with "./" or "../" and resolve from the registry root instead of the
// scope's middleware base.
type MiddlewareRef struct {
	Module   string
	Function string
	Relative bool
}

// ParseMiddlewareRef parses a middleware reference. After any leading
// relative markers exactly one separator must remain, with a non-empty,
// unpadded module and function on either side.
func ParseMiddlewareRef(ref string) (MiddlewareRef, error) {
	rest := ref
	for {
		if trimmed, ok := strings.CutPrefix(rest, "./"); ok {
			rest = trimmed
			continue
		}
		if trimmed, ok := strings.CutPrefix(rest, "../"); ok {
			rest = trimmed
			continue
		}
		break
	}
	marker := ref[:len(ref)-len(rest)]

	switch strings.Count(rest, middlewareSeparator) {
	case 0:
		return MiddlewareRef{}, errMissingSeparator
	case 1:
	default:
		return MiddlewareRef{}, errTooManySeparators
	}

	module, function, _ := strings.Cut(rest, middlewareSeparator)
	if err := checkSegments(module, function); err != nil {
		return MiddlewareRef{}, err
	}
	return MiddlewareRef{Module: marker + module, Function: function, Relative: marker != ""}, nil
}

// MergeMiddleware combines document and route middleware. With a non-empty
// global list the result is the global entries followed by the route
// entries, duplicates kept. Otherwise the route list is returned as is, nil
// when the route declared none.
func MergeMiddleware(global []string, route declaration.StringList) []string {
	if len(global) == 0 {
		if route == nil {
			return nil
		}
		return slices.Clone([]string(route))
	}

	merged := make([]string, 0, len(global)+len(route))
	merged = append(merged, global...)
	return append(merged, route...)
}

// middlewareModule is the registry path of a middleware module within scope.
func middlewareModule(scope Scope, ref MiddlewareRef) string {
	if ref.Relative {
		return registry.Key(ref.Module)
	}
	return registry.Key(path.Join(scope.MiddlewareBase, ref.Module))
}

// resolveMiddleware resolves every reference and reports all failures, not
// only the first.
func resolveMiddleware(
	middleware *registry.Registry[router.Middleware],
	scope Scope,
	loc Location,
	refs []string,
) ([]router.Middleware, []error) {
	if len(refs) == 0 {
		return nil, nil
	}

	chain := make([]router.Middleware, 0, len(refs))
	var errs []error
	for _, ref := range refs {
		parsed, err := ParseMiddlewareRef(ref)
		if err != nil {
			errs = append(errs, &ConfigurationError{Location: loc, Reference: ref, Err: err})
			continue
		}

		module := middlewareModule(scope, parsed)
		mw, err := middleware.Lookup(module, parsed.Function)
		if err != nil {
			errs = append(errs, &ResolutionError{Location: loc, Reference: ref, Module: module, Err: err})
			continue
		}
		chain = append(chain, mw)
	}
	return chain, errs
}
