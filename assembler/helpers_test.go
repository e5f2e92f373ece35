package assembler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/drblury/routeweaver/registry"
	"github.com/drblury/routeweaver/router"
)

type registration struct {
	Method  string
	Pattern string
	Chain   []router.Middleware
	Handler http.Handler
}

type recordingRegistrar struct {
	calls []registration
}

func (r *recordingRegistrar) Register(method, pattern string, chain []router.Middleware, handler http.Handler) error {
	r.calls = append(r.calls, registration{Method: method, Pattern: pattern, Chain: chain, Handler: handler})
	return nil
}

// action writes its own name so tests can tell handlers apart.
func action(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(name))
	})
}

// tag records its name in the X-Chain header, giving the execution order.
func tag(name string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func testRegistries(t *testing.T) (*registry.Registry[http.Handler], *registry.Registry[router.Middleware]) {
	t.Helper()

	controllers := registry.New[http.Handler]()
	require.NoError(t, controllers.Register("controllers/WidgetsController", map[string]http.Handler{
		"index": action("widgets.index"),
		"foo":   action("widgets.foo"),
		"show":  action("widgets.show"),
	}))
	require.NoError(t, controllers.Register("controllers/UsersController", map[string]http.Handler{
		"index":  action("users.index"),
		"create": action("users.create"),
	}))
	require.NoError(t, controllers.Register("controllers/Other", map[string]http.Handler{
		"bar": action("other.bar"),
	}))
	require.NoError(t, controllers.Register("admin/controllers/Dashboard", map[string]http.Handler{
		"index": action("dashboard.index"),
	}))

	middleware := registry.New[router.Middleware]()
	require.NoError(t, middleware.Register("middleware/auth", map[string]router.Middleware{
		"check": tag("auth.check"),
		"admin": tag("auth.admin"),
	}))
	require.NoError(t, middleware.Register("middleware/log", map[string]router.Middleware{
		"request": tag("log.request"),
	}))
	require.NoError(t, middleware.Register("admin/mw/guard", map[string]router.Middleware{
		"strict": tag("guard.strict"),
	}))
	require.NoError(t, middleware.Register("lib/audit", map[string]router.Middleware{
		"trail": tag("audit.trail"),
	}))
	return controllers, middleware
}

func newTestAssembler(t *testing.T, files fstest.MapFS, opts ...Option) (*Assembler, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	controllers, middleware := testRegistries(t)
	opts = append([]Option{
		WithFS(files),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	}, opts...)
	return New(DefaultConfig(), controllers, middleware, opts...), &logs
}

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

// serve runs a route's chain and handler, returning the handler output and
// the middleware order.
func serve(t *testing.T, chain []router.Middleware, handler http.Handler) (string, []string) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.Chain(handler, chain...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec.Body.String(), rec.Header().Values("X-Chain")
}
