// Command routeweaver serves a small users API whose routing table is
// assembled from the JSON declarations under routes/.
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/drblury/routeweaver/app"
	"github.com/drblury/routeweaver/config"
	"github.com/drblury/routeweaver/logging"
	"github.com/drblury/routeweaver/responder"
)

//go:embed routes/*.json
var embedded embed.FS

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "routeweaver:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configDir = flag.String("config", "config", "directory holding env/<env>.yaml and local.yaml")
		envName   = flag.String("env", "", "environment name, overrides ROUTEWEAVER_ENV")
		routesDir = flag.String("routes", "", "read declarations from this directory instead of the embedded set")
	)
	flag.Parse()

	cfg, err := config.Load(config.Options{Dir: *configDir, Env: *envName})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	opts, err := demoOptions(cfg, logger, *routesDir)
	if err != nil {
		return err
	}
	return app.Run(ctx, cfg, opts...)
}

func demoOptions(cfg config.Config, logger *slog.Logger, routesDir string) ([]app.Option, error) {
	rsp := responder.NewResponder(
		responder.WithLogger(logger),
		responder.WithPanicDetails(cfg.Server.ExposePanics || cfg.Development()),
		responder.WithErrorClassifier(classifyError),
	)
	controllers, middleware := demoRegistries(rsp, logger)

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithResponder(rsp),
		app.WithControllers(controllers),
		app.WithMiddleware(middleware),
		app.WithVersion(map[string]string{"version": version}),
	}

	if routesDir != "" {
		return append(opts, app.WithRoutesFS(os.DirFS(routesDir))), nil
	}
	routes, err := fs.Sub(embedded, "routes")
	if err != nil {
		return nil, err
	}
	return append(opts, app.WithRoutesFS(routes)), nil
}
