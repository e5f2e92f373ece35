package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// Middleware wraps an http.Handler to produce a new http.Handler.
type Middleware func(http.Handler) http.Handler

// PanicHandler writes the response for a request whose handler panicked.
type PanicHandler func(w http.ResponseWriter, r *http.Request, recovered any)

// Option configures New via the functional options pattern.
type Option func(*options)

type options struct {
	config         Config
	logger         *slog.Logger
	swagger        *openapi3.T
	onPanic        PanicHandler
	prepend        []Middleware
	append         []Middleware
	override       []Middleware
	enableRecovery bool
	enableOpenAPI  bool
	enableCORS     bool
	enableTimeout  bool
	enableLogging  bool
}

func defaultOptions() *options {
	return &options{
		config: Config{
			Timeout: 30 * time.Second,
		},
		logger:         slog.Default(),
		onPanic:        defaultPanicHandler,
		enableRecovery: true,
		enableOpenAPI:  true,
		enableCORS:     true,
		enableTimeout:  true,
		enableLogging:  true,
	}
}

func (o *options) middlewareChain() []Middleware {
	if len(o.override) > 0 {
		return cloneMiddlewares(o.override)
	}

	chain := make([]Middleware, 0, len(o.prepend)+len(o.append)+5)
	chain = append(chain, o.prepend...)
	chain = append(chain, o.defaultMiddlewares()...)
	chain = append(chain, o.append...)
	return chain
}

// defaultMiddlewares lists the built-in stack outermost first. Recovery sits
// in front so a panic anywhere below still produces a response.
func (o *options) defaultMiddlewares() []Middleware {
	chain := make([]Middleware, 0, 5)

	if o.enableRecovery {
		chain = append(chain, recoveryMiddleware(o.logger, o.onPanic))
	}

	if o.enableOpenAPI && o.swagger != nil {
		chain = append(chain, oapiMiddleware(o.swagger))
	}

	if o.enableCORS && shouldApplyCORS(o.config.CORS) {
		chain = append(chain, corsMiddleware(o.config.CORS))
	}

	if o.enableTimeout && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout))
	}

	if o.enableLogging && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, o.config.QuietdownRoutes, o.config.HideHeaders))
	}

	return chain
}

// WithConfig replaces the middleware configuration with the provided value.
func WithConfig(cfg Config) Option {
	configCopy := sanitizeConfig(cfg)
	return func(o *options) {
		o.config = configCopy
	}
}

// WithConfigMutator applies a mutation to the configuration after defaults are set.
func WithConfigMutator(mutator func(*Config)) Option {
	return func(o *options) {
		if mutator != nil {
			mutator(&o.config)
		}
	}
}

// WithLogger sets the logger used by the logging and recovery middlewares.
// A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSwagger wires an OpenAPI document for request validation.
func WithSwagger(swagger *openapi3.T) Option {
	return func(o *options) {
		o.swagger = swagger
	}
}

// WithPanicHandler replaces the response written after a recovered panic.
func WithPanicHandler(handler PanicHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.onPanic = handler
		}
	}
}

// WithMiddlewares prepends custom middlewares ahead of the default chain.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.prepend = append(o.prepend, middlewares...)
	}
}

// WithTrailingMiddlewares appends middlewares after the default chain.
func WithTrailingMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.append = append(o.append, middlewares...)
	}
}

// WithMiddlewareChain fully overrides the middleware chain with the provided sequence.
func WithMiddlewareChain(middlewares ...Middleware) Option {
	cloned := cloneMiddlewares(middlewares)
	return func(o *options) {
		o.override = cloned
	}
}

// WithoutRecovery disables the panic recovery middleware.
func WithoutRecovery() Option {
	return func(o *options) {
		o.enableRecovery = false
	}
}

// WithoutOpenAPIValidation disables the OpenAPI validation middleware.
func WithoutOpenAPIValidation() Option {
	return func(o *options) {
		o.enableOpenAPI = false
	}
}

// WithoutCORSMiddleware disables the CORS middleware regardless of configuration.
func WithoutCORSMiddleware() Option {
	return func(o *options) {
		o.enableCORS = false
	}
}

// WithoutTimeoutMiddleware disables the timeout middleware.
func WithoutTimeoutMiddleware() Option {
	return func(o *options) {
		o.enableTimeout = false
	}
}

// WithoutLoggingMiddleware disables the logging middleware.
func WithoutLoggingMiddleware() Option {
	return func(o *options) {
		o.enableLogging = false
	}
}

func sanitizeConfig(cfg Config) Config {
	cfg.QuietdownRoutes = cloneStrings(cfg.QuietdownRoutes)
	cfg.HideHeaders = cloneStrings(cfg.HideHeaders)
	cfg.CORS.Headers = cloneStrings(cfg.CORS.Headers)
	cfg.CORS.Methods = cloneStrings(cfg.CORS.Methods)
	cfg.CORS.Origins = cloneStrings(cfg.CORS.Origins)
	return cfg
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}

func cloneMiddlewares(middlewares []Middleware) []Middleware {
	cloned := make([]Middleware, len(middlewares))
	copy(cloned, middlewares)
	return cloned
}

func shouldApplyCORS(cfg CORSConfig) bool {
	return len(cfg.Origins) > 0
}
