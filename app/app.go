// Package app wires the route assembler into a runnable HTTP service:
// configuration, logging, data store connections, the assembled routing
// table, introspection endpoints, error handlers and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/drblury/routeweaver/assembler"
	"github.com/drblury/routeweaver/config"
	"github.com/drblury/routeweaver/connections"
	"github.com/drblury/routeweaver/info"
	"github.com/drblury/routeweaver/logging"
	"github.com/drblury/routeweaver/registry"
	"github.com/drblury/routeweaver/responder"
	"github.com/drblury/routeweaver/router"
)

// Option configures an App.
type Option func(*App)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.log = logger
		}
	}
}

// WithControllers sets the controller registry handlers resolve against.
func WithControllers(controllers *registry.Registry[http.Handler]) Option {
	return func(a *App) {
		a.controllers = controllers
	}
}

// WithMiddleware sets the middleware registry.
func WithMiddleware(middleware *registry.Registry[router.Middleware]) Option {
	return func(a *App) {
		a.middleware = middleware
	}
}

// WithResponder replaces the responder used for error pages and info
// endpoints.
func WithResponder(rsp *responder.Responder) Option {
	return func(a *App) {
		a.responder = rsp
	}
}

// WithRoutesFS reads declarations from fsys instead of the configured
// directory.
func WithRoutesFS(fsys fs.FS) Option {
	return func(a *App) {
		a.routesFS = fsys
	}
}

// WithVersion sets the payload of the version endpoint.
func WithVersion(version any) Option {
	return func(a *App) {
		a.version = version
	}
}

// WithSwagger validates incoming requests against doc.
func WithSwagger(doc *openapi3.T) Option {
	return func(a *App) {
		a.swagger = doc
	}
}

// WithRouterOptions adds options to the process-wide middleware stack.
func WithRouterOptions(opts ...router.Option) Option {
	return func(a *App) {
		a.routerOpts = append(a.routerOpts, opts...)
	}
}

// App is an assembled service, ready to serve.
type App struct {
	cfg         config.Config
	log         *slog.Logger
	controllers *registry.Registry[http.Handler]
	middleware  *registry.Registry[router.Middleware]
	responder   *responder.Responder
	routesFS    fs.FS
	version     any
	swagger     *openapi3.T
	routerOpts  []router.Option

	conns   *connections.Manager
	routes  []assembler.Route
	handler http.Handler
}

// New builds the service described by cfg. It opens the configured
// connections, waits for them to answer, and assembles the routing table.
// Any failure closes what was opened and is returned; nothing is served.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	if a.log == nil {
		logger, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return nil, err
		}
		a.log = logger
	}
	if a.responder == nil {
		a.responder = responder.NewResponder(
			responder.WithLogger(a.log),
			responder.WithPanicDetails(cfg.Server.ExposePanics || cfg.Development()),
		)
	}

	conns, err := connections.Open(ctx, cfg.Connections, connections.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	a.conns = conns

	if err := a.assemble(ctx); err != nil {
		return nil, errors.Join(err, a.conns.Close(context.WithoutCancel(ctx)))
	}
	return a, nil
}

func (a *App) assemble(ctx context.Context) error {
	mux := chi.NewRouter()
	mux.NotFound(a.responder.NotFound)
	mux.MethodNotAllowed(a.responder.MethodNotAllowed)

	asmOpts := []assembler.Option{
		assembler.WithLogger(a.log),
		assembler.WithReadiness(a.conns.Probes()...),
	}
	if a.routesFS != nil {
		asmOpts = append(asmOpts, assembler.WithFS(a.routesFS))
	}

	routes, err := assembler.New(a.cfg.Assembler, a.controllers, a.middleware, asmOpts...).
		Assemble(ctx, router.NewChiRegistrar(mux))
	if err != nil {
		return err
	}
	a.routes = routes

	ih := info.NewInfoHandler(
		info.WithInfoResponder(a.responder),
		info.WithRoutes(a.Routes),
		info.WithInfoProvider(func() any { return a.version }),
		info.WithReadinessChecks(a.conns.Probes()...),
	)
	if err := ih.Register(router.NewChiRegistrar(mux), info.DefaultPrefix); err != nil {
		return fmt.Errorf("app: mount info endpoints: %w", err)
	}

	routerOpts := []router.Option{
		router.WithConfig(a.cfg.Router),
		router.WithLogger(a.log),
		router.WithPanicHandler(a.responder.Panic),
	}
	if a.swagger != nil {
		routerOpts = append(routerOpts, router.WithSwagger(a.swagger))
	}
	a.handler = router.New(mux, append(routerOpts, a.routerOpts...)...)

	a.log.Info("routes assembled", "routes", len(routes))
	return nil
}

// Handler returns the root handler, middleware included.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Routes returns the assembled routes in registration order.
func (a *App) Routes() []assembler.Route {
	return a.routes
}

// Connections returns the opened data store clients.
func (a *App) Connections() *connections.Manager {
	return a.conns
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(a.log.Handler(), slog.LevelWarn),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serveDone := make(chan struct{})
	shutdownDone := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
		case <-serveDone:
			shutdownDone <- nil
			return
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		a.log.Info("shutting down", "timeout", a.cfg.Server.ShutdownTimeout)
		shutdownDone <- srv.Shutdown(shutdownCtx)
	}()

	a.log.Info("listening", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	close(serveDone)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownDone
}

// Close releases the data store connections.
func (a *App) Close(ctx context.Context) error {
	return a.conns.Close(ctx)
}

// Run builds the service, listens on the configured address and serves
// until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, opts ...Option) error {
	a, err := New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			a.log.Error("closing connections", "error", err)
		}
	}()

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("app: listen on %s: %w", cfg.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}
