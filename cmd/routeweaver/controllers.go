package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/drblury/routeweaver/registry"
	"github.com/drblury/routeweaver/responder"
	"github.com/drblury/routeweaver/router"
)

var (
	errUserNotFound = errors.New("user not found")
	errUserExists   = errors.New("user already exists")
	errInvalidUser  = errors.New("user needs an id and a name")
)

func classifyError(err error) (int, bool) {
	switch {
	case errors.Is(err, errUserNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, errUserExists):
		return http.StatusConflict, true
	case errors.Is(err, errInvalidUser):
		return http.StatusBadRequest, true
	}
	return 0, false
}

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// usersController keeps users in memory.
type usersController struct {
	rsp *responder.Responder

	mu    sync.RWMutex
	users map[string]user
}

func newUsersController(rsp *responder.Responder) *usersController {
	return &usersController{rsp: rsp, users: make(map[string]user)}
}

func (c *usersController) Index(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	list := make([]user, 0, len(c.users))
	for _, u := range c.users {
		list = append(list, u)
	}
	c.mu.RUnlock()

	slices.SortFunc(list, func(a, b user) int { return strings.Compare(a.ID, b.ID) })
	c.rsp.RespondWithJSON(w, r, http.StatusOK, list)
}

func (c *usersController) Show(w http.ResponseWriter, r *http.Request) error {
	c.mu.RLock()
	u, ok := c.users[r.PathValue("id")]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", errUserNotFound, r.PathValue("id"))
	}

	c.rsp.RespondWithJSON(w, r, http.StatusOK, u)
	return nil
}

func (c *usersController) Create(w http.ResponseWriter, r *http.Request) error {
	var u user
	if !c.rsp.ReadRequestBody(w, r, &u) {
		return nil
	}
	if u.ID == "" || u.Name == "" {
		return errInvalidUser
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.users[u.ID]; exists {
		return fmt.Errorf("%w: %s", errUserExists, u.ID)
	}
	c.users[u.ID] = u

	c.rsp.RespondWithJSON(w, r, http.StatusCreated, u)
	return nil
}

func (c *usersController) Destroy(w http.ResponseWriter, r *http.Request) error {
	id := r.PathValue("id")

	c.mu.Lock()
	_, ok := c.users[id]
	delete(c.users, id)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", errUserNotFound, id)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

type pingController struct{}

// Index answers every method.
func (pingController) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "pong %s\n", r.Method)
}

// authMiddleware rejects requests without a bearer token.
type authMiddleware struct {
	rsp *responder.Responder
}

var errMissingToken = errors.New("missing bearer token")

func (m authMiddleware) Check(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			m.rsp.HandleUnauthorizedError(w, r, errMissingToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type logMiddleware struct {
	log *slog.Logger
}

func (m logMiddleware) Request(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.log.InfoContext(r.Context(), "request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func demoRegistries(rsp *responder.Responder, logger *slog.Logger) (*registry.Registry[http.Handler], *registry.Registry[router.Middleware]) {
	controllers := registry.New[http.Handler]()
	controllers.MustRegister("controllers/UsersController", registry.HandlerMethods(newUsersController(rsp), rsp))
	controllers.MustRegister("controllers/PingController", registry.HandlerMethods(pingController{}, rsp))

	middleware := registry.New[router.Middleware]()
	middleware.MustRegister("middleware/auth", registry.MiddlewareMethods(authMiddleware{rsp: rsp}))
	middleware.MustRegister("middleware/log", registry.MiddlewareMethods(logMiddleware{log: logger}))

	return controllers, middleware
}
