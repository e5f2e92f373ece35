// Package config loads the process configuration in layers, each one
// overriding the previous:
//
//  1. built-in defaults (Default)
//  2. <dir>/env/<env>.yaml
//  3. <dir>/local.yaml
//  4. variables from .env files, unless already set in the environment
//  5. environment variables prefixed with ROUTEWEAVER_
//
// Missing files are skipped. The result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/drblury/routeweaver/assembler"
	"github.com/drblury/routeweaver/connections"
	"github.com/drblury/routeweaver/logging"
	"github.com/drblury/routeweaver/router"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ROUTEWEAVER_"

// ErrInvalid marks a configuration that loaded but failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete process configuration.
type Config struct {
	// Env selects the per-environment file, e.g. "development".
	Env         string             `yaml:"env" env:"ENV"`
	Server      ServerConfig       `yaml:"server" envPrefix:"SERVER_"`
	Log         logging.Config     `yaml:"log" envPrefix:"LOG_"`
	Router      router.Config      `yaml:"router" envPrefix:"ROUTER_"`
	Assembler   assembler.Config   `yaml:"assembler"`
	Connections connections.Config `yaml:"connections"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string        `yaml:"addr" env:"ADDR"`
	ReadTimeout       time.Duration `yaml:"readTimeout" env:"READ_TIMEOUT"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout" env:"READ_HEADER_TIMEOUT"`
	WriteTimeout      time.Duration `yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `yaml:"idleTimeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
	// ExposePanics echoes recovered panic values in 500 responses.
	ExposePanics bool `yaml:"exposePanics" env:"EXPOSE_PANICS"`
}

// Development reports whether the process runs in the development
// environment.
func (c Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env: "development",
		Server: ServerConfig{
			Addr:              ":8080",
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Log: logging.Config{Format: logging.FormatAuto, Level: "info"},
		Router: router.Config{
			Timeout:         30 * time.Second,
			QuietdownRoutes: []string{"/_meta/healthz", "/_meta/readyz"},
			HideHeaders:     []string{"Authorization", "Cookie"},
		},
		Assembler: assembler.DefaultConfig(),
	}
}

// Options control where Load looks.
type Options struct {
	// Dir holds env/<env>.yaml and local.yaml. Defaults to "config".
	Dir string
	// Env overrides the environment name taken from ROUTEWEAVER_ENV.
	Env string
	// DotEnv lists .env files to read. Defaults to ".env".
	DotEnv []string
	// Environ replaces the process environment when set.
	Environ map[string]string
}

// Load builds the configuration from every layer.
func Load(opts Options) (Config, error) {
	if opts.Dir == "" {
		opts.Dir = "config"
	}
	if opts.DotEnv == nil {
		opts.DotEnv = []string{".env"}
	}

	environ, err := environment(opts)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if name := firstNonEmpty(opts.Env, environ[EnvPrefix+"ENV"]); name != "" {
		cfg.Env = name
	}

	files := []string{
		filepath.Join(opts.Dir, "env", cfg.Env+".yaml"),
		filepath.Join(opts.Dir, "local.yaml"),
	}
	for _, file := range files {
		if err := readYAML(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}
	if opts.Env != "" {
		cfg.Env = opts.Env
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late, at start-up.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Assembler.RoutesPath == "" {
		errs = append(errs, errors.New("assembler.routesPath is required"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdownTimeout must not be negative"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatAuto, logging.FormatJSON, logging.FormatText:
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of auto, json, text", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// environment merges .env files under the process (or supplied)
// environment; variables that are already set win.
func environment(opts Options) (map[string]string, error) {
	environ := opts.Environ
	if environ == nil {
		environ = env.ToMap(os.Environ())
	} else {
		environ = maps.Clone(environ)
	}

	for _, file := range opts.DotEnv {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", file, err)
		}
		for key, value := range values {
			if _, set := environ[key]; !set {
				environ[key] = value
			}
		}
	}
	return environ, nil
}

func readYAML(file string, cfg *Config) error {
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: %s: %w", file, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
