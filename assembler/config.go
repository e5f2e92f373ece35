package assembler

import "path"

// Config holds the assembler settings. Paths are module paths inside the
// registries, not file system paths, except RoutesPath which names the
// declarations directory.
type Config struct {
	// RoutesPath is the directory holding the declaration files.
	RoutesPath string `yaml:"routesPath" env:"ROUTES_PATH"`
	// ControllersPath is the default module prefix for controllers.
	ControllersPath string `yaml:"controllersPath" env:"CONTROLLERS_PATH"`
	// MiddlewarePath is the default module prefix for middleware.
	MiddlewarePath string `yaml:"middlewarePath" env:"MIDDLEWARE_PATH"`
	// DefaultAction is used when a verb declares no handler.
	DefaultAction string `yaml:"defaultAction" env:"DEFAULT_ACTION"`
	// ControllerSuffix is appended to the capitalized document name to form
	// the default controller name.
	ControllerSuffix string `yaml:"controllerSuffix" env:"CONTROLLER_SUFFIX"`
	// Verbose logs every mapped route.
	Verbose bool `yaml:"verbose" env:"VERBOSE"`
	// Strict makes a malformed declaration file fatal instead of skipping it.
	Strict bool `yaml:"strict" env:"STRICT"`
}

// DefaultConfig returns the conventional layout: declarations under
// "routes", controllers under "controllers", middleware under "middleware",
// default action "index" and the "Controller" suffix.
func DefaultConfig() Config {
	return Config{
		RoutesPath:       "routes",
		ControllersPath:  "controllers",
		MiddlewarePath:   "middleware",
		DefaultAction:    "index",
		ControllerSuffix: "Controller",
		Strict:           true,
	}
}

// withDefaults fills empty fields from DefaultConfig. Verbose and Strict are
// taken as given.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.RoutesPath == "" {
		c.RoutesPath = def.RoutesPath
	}
	if c.ControllersPath == "" {
		c.ControllersPath = def.ControllersPath
	}
	if c.MiddlewarePath == "" {
		c.MiddlewarePath = def.MiddlewarePath
	}
	if c.DefaultAction == "" {
		c.DefaultAction = def.DefaultAction
	}
	if c.ControllerSuffix == "" {
		c.ControllerSuffix = def.ControllerSuffix
	}
	c.ControllersPath = path.Clean(c.ControllersPath)
	c.MiddlewarePath = path.Clean(c.MiddlewarePath)
	return c
}
