package info

import (
	"net/http"
	"strings"

	"github.com/drblury/routeweaver/router"
)

// DefaultPrefix is where app mounts the info endpoints.
const DefaultPrefix = "/_meta"

// Register mounts the info endpoints under prefix on reg:
//
//	GET {prefix}/status
//	GET {prefix}/healthz
//	GET {prefix}/readyz
//	GET {prefix}/version
//	GET {prefix}/routes
//	GET {prefix}/openapi.json
func (ih *InfoHandler) Register(reg router.Registrar, prefix string) error {
	prefix = strings.TrimSuffix(prefix, "/")

	endpoints := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/status", ih.GetStatus},
		{"/healthz", ih.GetHealthz},
		{"/readyz", ih.GetReadyz},
		{"/version", ih.GetVersion},
		{"/routes", ih.GetRoutes},
		{"/openapi.json", ih.GetOpenAPIJSON},
	}
	for _, endpoint := range endpoints {
		if err := reg.Register(http.MethodGet, prefix+endpoint.path, nil, endpoint.handler); err != nil {
			return err
		}
	}
	return nil
}
