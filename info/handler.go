package info

import (
	"time"

	"github.com/drblury/routeweaver/assembler"
	"github.com/drblury/routeweaver/probe"
	"github.com/drblury/routeweaver/responder"
)

// InfoProvider returns the payload that will be exposed by the version endpoint.
// The provider allows callers to inject their own source for build metadata or
// runtime diagnostics.
type InfoProvider func() any

// RoutesProvider returns the routing table to describe. It is usually backed
// by the result of assembler.Assembler.Assemble.
type RoutesProvider func() []assembler.Route

// InfoOption follows the functional options pattern used by NewInfoHandler to
// configure optional collaborators such as the responder and the information
// providers.
type InfoOption func(*InfoHandler)

// ProbeFunc is executed to determine the outcome of liveness or readiness
// probes. Returning a non-nil error marks the probe as failed.
type ProbeFunc = probe.Func

// InfoHandler serves status, probe, version and route introspection
// endpoints.
type InfoHandler struct {
	*responder.Responder
	infoProvider    InfoProvider
	routesProvider  RoutesProvider
	apiTitle        string
	apiVersion      string
	probeTimeout    time.Duration
	livenessChecks  []ProbeFunc
	readinessChecks []ProbeFunc
}

// NewInfoHandler constructs an InfoHandler with sensible defaults. Callers can
// supply InfoOption values to plug in domain specific providers or override the
// base responder implementation.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder: responder.NewResponder(),
		infoProvider: func() any {
			return map[string]string{}
		},
		routesProvider: func() []assembler.Route { return nil },
		apiTitle:       "routeweaver",
		apiVersion:     "0.0.0",
		probeTimeout:   probe.DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// WithInfoResponder replaces the responder used to craft JSON responses and
// handle error reporting.
func WithInfoResponder(responder *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if responder != nil {
			ih.Responder = responder
		}
	}
}

// WithInfoProvider swaps the default metadata provider with a user supplied
// implementation.
func WithInfoProvider(provider InfoProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.infoProvider = provider
		}
	}
}

// WithRoutes sets the source of the routing table.
func WithRoutes(provider RoutesProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.routesProvider = provider
		}
	}
}

// WithAPIInfo sets the title and version of the generated OpenAPI document.
func WithAPIInfo(title, version string) InfoOption {
	return func(ih *InfoHandler) {
		if title != "" {
			ih.apiTitle = title
		}
		if version != "" {
			ih.apiVersion = version
		}
	}
}

// WithProbeTimeout adjusts the maximum duration allowed for probe checks.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.probeTimeout = timeout
		}
	}
}

// WithLivenessChecks replaces the default liveness checks with the supplied
// functions.
func WithLivenessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.livenessChecks = probe.Filter(checks)
	}
}

// WithReadinessChecks replaces the default readiness checks with the supplied
// functions.
func WithReadinessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.readinessChecks = probe.Filter(checks)
	}
}
