package registry

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrModuleNotFound is returned when no module is registered under a path.
	ErrModuleNotFound = errors.New("module not found")
	// ErrExportNotFound is returned when a module has no export of that name.
	ErrExportNotFound = errors.New("export not found")
	// ErrDuplicateModule is returned when a module path is registered twice.
	ErrDuplicateModule = errors.New("module already registered")
	// ErrInvalidModule is returned for empty module paths or export names.
	ErrInvalidModule = errors.New("invalid module")
)

// Registry is a set of modules, each holding named exports of type T. The
// zero value is not usable; call New. A Registry is safe for concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	modules map[string]map[string]T
}

// New returns an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{modules: make(map[string]map[string]T)}
}

// Key normalizes a module path: it is cleaned and a leading "./" dropped, so
// "./middleware/auth" and "middleware//auth" name the same module.
func Key(modulePath string) string {
	return path.Clean(strings.TrimSpace(modulePath))
}

// Register adds a module. The exports map is copied; later changes to it
// are not observed.
func (r *Registry[T]) Register(modulePath string, exports map[string]T) error {
	key := Key(modulePath)
	if key == "." || key == "/" {
		return fmt.Errorf("%w: empty module path %q", ErrInvalidModule, modulePath)
	}
	for name := range exports {
		if name == "" {
			return fmt.Errorf("%w: module %q has an export without a name", ErrInvalidModule, key)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateModule, key)
	}
	r.modules[key] = maps.Clone(exports)
	if r.modules[key] == nil {
		r.modules[key] = map[string]T{}
	}
	return nil
}

// MustRegister is like Register but panics on error. It suits package-level
// wiring where a failure is a programming mistake.
func (r *Registry[T]) MustRegister(modulePath string, exports map[string]T) {
	if err := r.Register(modulePath, exports); err != nil {
		panic(err)
	}
}

// Lookup returns the export name of the module at modulePath.
func (r *Registry[T]) Lookup(modulePath, name string) (T, error) {
	var zero T
	key := Key(modulePath)

	r.mu.RLock()
	defer r.mu.RUnlock()

	exports, ok := r.modules[key]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrModuleNotFound, key)
	}
	export, ok := exports[name]
	if !ok {
		return zero, fmt.Errorf("%w: %q has no export %q", ErrExportNotFound, key, name)
	}
	return export, nil
}

// Has reports whether a module is registered under modulePath.
func (r *Registry[T]) Has(modulePath string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.modules[Key(modulePath)]
	return ok
}

// Modules returns the registered module paths in sorted order.
func (r *Registry[T]) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.modules))
}

// Exports returns the export names of a module in sorted order, or nil when
// the module is unknown.
func (r *Registry[T]) Exports(modulePath string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exports, ok := r.modules[Key(modulePath)]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(exports))
}
