package responder

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	errRouteNotFound    = errors.New("route not found")
	errMethodNotAllowed = errors.New("method not allowed for route")
	errHandlerPanicked  = errors.New("internal error")
)

// FallibleHandler is a handler that reports failures by returning them.
type FallibleHandler func(w http.ResponseWriter, req *http.Request) error

// NotFound renders a 404 problem document. It is installed as the serving
// layer's fallback for unknown routes.
func (r *Responder) NotFound(w http.ResponseWriter, req *http.Request) {
	r.HandleAPIError(w, req, http.StatusNotFound, errRouteNotFound)
}

// MethodNotAllowed renders a 405 problem document.
func (r *Responder) MethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	r.HandleAPIError(w, req, http.StatusMethodNotAllowed, errMethodNotAllowed)
}

// Panic renders a 500 problem document for a recovered panic. Its signature
// matches router.PanicHandler. The panic value only reaches the client when
// WithPanicDetails is enabled.
func (r *Responder) Panic(w http.ResponseWriter, req *http.Request, recovered any) {
	err := errHandlerPanicked
	if r.exposePanics {
		err = fmt.Errorf("%w: %v", errHandlerPanicked, recovered)
	}
	r.HandleInternalServerError(w, req, err, "handler panicked")
}

// Fallible adapts h to http.HandlerFunc, routing returned errors through
// HandleErrors.
func (r *Responder) Fallible(h FallibleHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.HandleErrors(w, req, err)
		}
	}
}
