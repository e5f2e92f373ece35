package assembler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/drblury/routeweaver/declaration"
	"github.com/drblury/routeweaver/probe"
	"github.com/drblury/routeweaver/registry"
	"github.com/drblury/routeweaver/router"
)

// Route is a fully resolved route, ready for or already committed to the
// serving layer.
type Route struct {
	// Method is the HTTP method, or router.AnyMethod for the "all" verb.
	Method string `json:"method"`
	// Pattern is the URI prefix of the document joined with the URI.
	Pattern string `json:"pattern"`
	File    string `json:"file"`
	URI     string `json:"uri"`
	Verb    string `json:"verb"`
	// Controller is the registry path of the controller module.
	Controller string `json:"controller"`
	Action     string `json:"action"`
	// Middleware lists the references behind Chain, in order.
	Middleware []string            `json:"middleware,omitempty"`
	Chain      []router.Middleware `json:"-"`
	Handler    http.Handler        `json:"-"`
}

// MethodName returns Method, or "ALL" for routes registered on every method.
func (r Route) MethodName() string {
	if r.Method == router.AnyMethod {
		return "ALL"
	}
	return r.Method
}

// Option configures an Assembler.
type Option func(*Assembler)

// Assembler resolves declaration documents against the controller and
// middleware registries and registers the result.
type Assembler struct {
	cfg              Config
	controllers      *registry.Registry[http.Handler]
	middleware       *registry.Registry[router.Middleware]
	log              *slog.Logger
	fsys             fs.FS
	readiness        []probe.Func
	readinessTimeout time.Duration
}

// New constructs an Assembler. Empty config fields take their DefaultConfig
// values; nil registries behave as empty ones.
func New(
	cfg Config,
	controllers *registry.Registry[http.Handler],
	middleware *registry.Registry[router.Middleware],
	opts ...Option,
) *Assembler {
	if controllers == nil {
		controllers = registry.New[http.Handler]()
	}
	if middleware == nil {
		middleware = registry.New[router.Middleware]()
	}

	a := &Assembler{
		cfg:              cfg.withDefaults(),
		controllers:      controllers,
		middleware:       middleware,
		log:              slog.Default(),
		readinessTimeout: probe.DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// WithLogger sets the logger for progress and diagnostics. Nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.log = logger
		}
	}
}

// WithFS reads declarations from fsys instead of Config.RoutesPath.
func WithFS(fsys fs.FS) Option {
	return func(a *Assembler) {
		a.fsys = fsys
	}
}

// WithReadiness adds checks that must pass before anything is registered,
// typically the ping probes of the connections controllers depend on.
func WithReadiness(checks ...probe.Func) Option {
	return func(a *Assembler) {
		a.readiness = append(a.readiness, probe.Filter(checks)...)
	}
}

// WithReadinessTimeout bounds the readiness checks.
func WithReadinessTimeout(timeout time.Duration) Option {
	return func(a *Assembler) {
		if timeout > 0 {
			a.readinessTimeout = timeout
		}
	}
}

// Config returns the effective configuration.
func (a *Assembler) Config() Config {
	return a.cfg
}

// Load reads the declaration documents. In strict mode any malformed file
// fails the load; otherwise malformed files are logged and skipped.
func (a *Assembler) Load() ([]*declaration.Document, error) {
	var (
		result declaration.Result
		err    error
	)
	if a.fsys != nil {
		result, err = declaration.Load(a.fsys)
	} else {
		result, err = declaration.LoadDir(a.cfg.RoutesPath)
	}
	if err != nil {
		return nil, err
	}

	for _, failure := range result.Failures {
		if a.cfg.Strict {
			a.log.Error("malformed declaration file", "file", failure.File, "error", failure)
			continue
		}
		a.log.Warn("skipping malformed declaration file", "file", failure.File, "error", failure)
	}
	if a.cfg.Strict {
		if err := result.Err(); err != nil {
			return nil, err
		}
	}
	return result.Documents, nil
}

// Plan resolves every route of docs without registering anything. It keeps
// going after a failure so that one run reports every bad reference; the
// errors are joined. Routes are returned in document, URI and verb order.
func (a *Assembler) Plan(docs []*declaration.Document) ([]Route, error) {
	var (
		routes []Route
		errs   []error
	)
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		scope := ResolveScope(doc, a.cfg)
		for _, decl := range doc.Routes {
			for _, verb := range decl.Verbs {
				route, routeErrs := a.planRoute(scope, decl.URI, verb)
				if len(routeErrs) > 0 {
					errs = append(errs, routeErrs...)
					continue
				}
				routes = append(routes, route)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return routes, nil
}

func (a *Assembler) planRoute(scope Scope, uri string, verb declaration.Verb) (Route, []error) {
	loc := Location{File: scope.File, URI: uri, Verb: verb.Method}

	method, ok := Method(verb.Method)
	if !ok {
		return Route{}, []error{&ConfigurationError{Location: loc, Reference: verb.Method, Err: errUnknownVerb}}
	}

	var errs []error
	ref, module, handler, err := resolveHandler(a.controllers, scope, loc, verb.Config.Handler, a.cfg.DefaultAction)
	if err != nil {
		errs = append(errs, err)
	}

	refs := MergeMiddleware(scope.Middleware, verb.Config.Middleware)
	chain, mwErrs := resolveMiddleware(a.middleware, scope, loc, refs)
	errs = append(errs, mwErrs...)
	if len(errs) > 0 {
		return Route{}, errs
	}

	return Route{
		Method:     method,
		Pattern:    scope.URIPrefix + uri,
		File:       scope.File,
		URI:        uri,
		Verb:       verb.Method,
		Controller: module,
		Action:     ref.Action,
		Middleware: refs,
		Chain:      chain,
		Handler:    handler,
	}, nil
}

// Assemble loads the declarations, waits for readiness, resolves every
// route and registers the result with reg. Nothing is registered unless the
// whole plan resolves and, when reg implements router.Checker, the serving
// layer accepts every pattern in a rehearsal. The registered routes are
// returned in registration order; on any error no routes are returned.
func (a *Assembler) Assemble(ctx context.Context, reg router.Registrar) ([]Route, error) {
	if reg == nil {
		return nil, errors.New("assembler: registrar is nil")
	}

	docs, err := a.Load()
	if err != nil {
		a.log.Error("cannot load route declarations", "path", a.cfg.RoutesPath, "error", err)
		return nil, err
	}

	if err := probe.Run(ctx, a.readinessTimeout, a.readiness...); err != nil {
		a.log.Error("dependencies not ready, routes not registered", "error", err)
		return nil, fmt.Errorf("assembler: readiness: %w", err)
	}

	routes, err := a.Plan(docs)
	if err != nil {
		a.logFatal(err)
		return nil, err
	}
	routes = a.dedupe(routes)

	if checker, ok := reg.(router.Checker); ok {
		entries := make([]router.Entry, len(routes))
		for i, route := range routes {
			entries[i] = router.Entry{Method: route.Method, Pattern: route.Pattern}
		}
		if err := checker.Check(entries); err != nil {
			a.log.Error("serving layer rejected the route plan, nothing registered", "error", err)
			return nil, fmt.Errorf("assembler: %w", err)
		}
	}

	for _, route := range routes {
		if err := reg.Register(route.Method, route.Pattern, route.Chain, route.Handler); err != nil {
			a.log.Error("serving layer rejected route",
				"method", route.MethodName(),
				"pattern", route.Pattern,
				"file", route.File,
				"error", err,
			)
			return nil, fmt.Errorf("assembler: register %s %s from %q: %w", route.MethodName(), route.Pattern, route.File, err)
		}
		if a.cfg.Verbose {
			a.log.Info("mapped route",
				"method", route.MethodName(),
				"pattern", route.Pattern,
				"file", route.File,
				"controller", route.Controller,
				"action", route.Action,
			)
		}
	}

	a.log.Debug("route assembly complete", "routes", len(routes), "documents", len(docs))
	return routes, nil
}

// dedupe keeps the last declaration for each (method, pattern) pair, in the
// position of the first.
func (a *Assembler) dedupe(routes []Route) []Route {
	type key struct{ method, pattern string }

	index := make(map[key]int, len(routes))
	out := make([]Route, 0, len(routes))
	for _, route := range routes {
		k := key{route.Method, route.Pattern}
		if i, seen := index[k]; seen {
			a.log.Warn("duplicate route declaration, last one wins",
				"method", route.MethodName(),
				"pattern", route.Pattern,
				"previous", out[i].File,
				"file", route.File,
			)
			out[i] = route
			continue
		}
		index[k] = len(out)
		out = append(out, route)
	}
	return out
}

func (a *Assembler) logFatal(err error) {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		a.log.Error("route assembly failed", "error", err)
		return
	}
	for _, e := range joined.Unwrap() {
		attrs := []any{"error", e}
		var cfgErr *ConfigurationError
		var resErr *ResolutionError
		switch {
		case errors.As(e, &cfgErr):
			attrs = append(attrs, "file", cfgErr.File, "uri", cfgErr.URI, "verb", cfgErr.Verb, "reference", cfgErr.Reference)
		case errors.As(e, &resErr):
			attrs = append(attrs, "file", resErr.File, "uri", resErr.URI, "verb", resErr.Verb, "reference", resErr.Reference, "module", resErr.Module)
		}
		a.log.Error("route assembly failed", attrs...)
	}
}
