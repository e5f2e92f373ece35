package router

import "time"

// Config holds the settings of the process-wide middleware built by New.
type Config struct {
	// Timeout bounds each request; zero disables the timeout middleware.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	CORS    CORSConfig    `yaml:"cors" envPrefix:"CORS_"`
	// QuietdownRoutes are exact paths the logging middleware skips, such as
	// health probes.
	QuietdownRoutes []string `yaml:"quietdownRoutes" env:"QUIETDOWN_ROUTES"`
	// HideHeaders are redacted from request logs.
	HideHeaders []string `yaml:"hideHeaders" env:"HIDE_HEADERS"`
}

// CORSConfig configures cross-origin handling. CORS stays off while Origins
// is empty.
type CORSConfig struct {
	Origins          []string `yaml:"origins" env:"ORIGINS"`
	Methods          []string `yaml:"methods" env:"METHODS"`
	Headers          []string `yaml:"headers" env:"HEADERS"`
	AllowCredentials bool     `yaml:"allowCredentials" env:"ALLOW_CREDENTIALS"`
}
