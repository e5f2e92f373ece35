package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
)

// AnyMethod registers a handler for every HTTP method.
const AnyMethod = ""

// ErrRegistration is returned when the serving layer rejects a route, for
// instance because the pattern is invalid or already taken.
var ErrRegistration = errors.New("route registration rejected")

// Registrar commits a resolved route to a serving layer's routing table.
// Middlewares run in chain order before handler; an empty chain registers
// handler directly. Patterns use ":name" path parameters, which every
// adapter exposes to handlers through (*http.Request).PathValue.
type Registrar interface {
	Register(method, pattern string, chain []Middleware, handler http.Handler) error
}

// Entry is one registration to rehearse.
type Entry struct {
	Method  string
	Pattern string
}

// Checker is implemented by registrars that can rehearse a batch of
// registrations on a scratch routing table of the same kind. Check returns
// the error of the first registration the serving layer would reject; the
// real routing table is not touched. Conflicts with routes that are already
// in the real table are not detected.
type Checker interface {
	Check(entries []Entry) error
}

// rehearse registers every entry on scratch with a no-op handler.
func rehearse(scratch Registrar, entries []Entry) error {
	noop := http.NotFoundHandler()
	for _, e := range entries {
		if err := scratch.Register(e.Method, e.Pattern, nil, noop); err != nil {
			return err
		}
	}
	return nil
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(method, pattern string, chain []Middleware, handler http.Handler) error

// Register calls f.
func (f RegistrarFunc) Register(method, pattern string, chain []Middleware, handler http.Handler) error {
	return f(method, pattern, chain, handler)
}

// ServeMuxRegistrar registers routes on a net/http ServeMux.
type ServeMuxRegistrar struct {
	mux *http.ServeMux
}

// NewServeMuxRegistrar returns a Registrar backed by mux.
func NewServeMuxRegistrar(mux *http.ServeMux) *ServeMuxRegistrar {
	return &ServeMuxRegistrar{mux: mux}
}

// Register implements Registrar.
func (s *ServeMuxRegistrar) Register(method, pattern string, chain []Middleware, handler http.Handler) (err error) {
	p := serveMuxPattern(method, pattern)
	defer recoverRegistration(&err, p)

	s.mux.Handle(p, Chain(handler, chain...))
	return nil
}

// Check implements Checker on a fresh ServeMux.
func (s *ServeMuxRegistrar) Check(entries []Entry) error {
	return rehearse(NewServeMuxRegistrar(http.NewServeMux()), entries)
}

// ChiRegistrar registers routes on a chi router.
type ChiRegistrar struct {
	router chi.Router
}

// NewChiRegistrar returns a Registrar backed by r.
func NewChiRegistrar(r chi.Router) *ChiRegistrar {
	return &ChiRegistrar{router: r}
}

// Register implements Registrar. The chain is attached with chi's inline
// With, so it only wraps this route.
func (c *ChiRegistrar) Register(method, pattern string, chain []Middleware, handler http.Handler) (err error) {
	p := BraceParams(pattern)
	defer recoverRegistration(&err, method+" "+p)

	r := c.router
	if len(chain) > 0 {
		middlewares := make([]func(http.Handler) http.Handler, 0, len(chain))
		for _, m := range chain {
			if m != nil {
				middlewares = append(middlewares, m)
			}
		}
		r = r.With(middlewares...)
	}

	if method == AnyMethod {
		r.Handle(p, handler)
		return nil
	}
	r.Method(method, p, handler)
	return nil
}

// Check implements Checker on a fresh chi router.
func (c *ChiRegistrar) Check(entries []Entry) error {
	return rehearse(NewChiRegistrar(chi.NewRouter()), entries)
}

// GinRegistrar registers routes on a gin engine or route group.
type GinRegistrar struct {
	routes gin.IRoutes
}

// NewGinRegistrar returns a Registrar backed by routes.
func NewGinRegistrar(routes gin.IRoutes) *GinRegistrar {
	return &GinRegistrar{routes: routes}
}

// Register implements Registrar.
func (g *GinRegistrar) Register(method, pattern string, chain []Middleware, handler http.Handler) (err error) {
	p := ColonParams(pattern)
	defer recoverRegistration(&err, method+" "+p)

	h := ginHandler(Chain(handler, chain...))
	if method == AnyMethod {
		g.routes.Any(p, h)
		return nil
	}
	g.routes.Handle(method, p, h)
	return nil
}

// Check implements Checker on a fresh gin engine.
func (g *GinRegistrar) Check(entries []Entry) error {
	return rehearse(NewGinRegistrar(gin.New()), entries)
}

// ginHandler bridges gin's path parameters to the request so handlers can
// read them with PathValue, as they do behind ServeMux and chi.
func ginHandler(h http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, param := range c.Params {
			c.Request.SetPathValue(param.Key, param.Value)
		}
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// recoverRegistration turns the panics serving layers raise for invalid or
// conflicting patterns into ErrRegistration.
func recoverRegistration(err *error, pattern string) {
	if recovered := recover(); recovered != nil {
		*err = fmt.Errorf("%w: %q: %v", ErrRegistration, pattern, recovered)
	}
}
