package info

import (
	"net/http"
)

// GetStatus returns a simple health payload that can be used for lightweight diagnostics.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "HEALTHY")
}

// GetHealthz implements the liveness probe recommended for Kubernetes.
func (ih *InfoHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.livenessChecks); err != nil {
		ih.HandleServiceUnavailableError(w, r, err, "liveness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ok")
}

// GetReadyz implements the readiness probe recommended for Kubernetes.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.readinessChecks); err != nil {
		ih.HandleServiceUnavailableError(w, r, err, "readiness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ready")
}

// GetVersion returns the structure provided by the configured InfoProvider.
func (ih *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := ih.infoProvider()
	if payload == nil {
		payload = map[string]string{}
	}
	ih.RespondWithJSON(w, r, http.StatusOK, payload)
}

type routeEntry struct {
	Method     string   `json:"method"`
	Pattern    string   `json:"pattern"`
	File       string   `json:"file"`
	Controller string   `json:"controller"`
	Action     string   `json:"action"`
	Middleware []string `json:"middleware,omitempty"`
}

// GetRoutes lists the assembled routes in registration order.
func (ih *InfoHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routes := ih.routesProvider()
	entries := make([]routeEntry, 0, len(routes))
	for _, route := range routes {
		entries = append(entries, routeEntry{
			Method:     route.MethodName(),
			Pattern:    route.Pattern,
			File:       route.File,
			Controller: route.Controller,
			Action:     route.Action,
			Middleware: route.Middleware,
		})
	}
	ih.RespondWithJSON(w, r, http.StatusOK, entries)
}

// GetOpenAPIJSON describes the assembled routes as an OpenAPI 3 document.
func (ih *InfoHandler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	body, err := BuildOpenAPI(ih.apiTitle, ih.apiVersion, ih.routesProvider()).MarshalJSON()
	if err != nil {
		ih.HandleInternalServerError(w, r, err, "failed to encode openapi document")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(body); err != nil {
		ih.Logger().Error("failed to write openapi response", "error", err)
	}
}
