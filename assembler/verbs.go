package assembler

import (
	"net/http"
	"strings"

	"github.com/drblury/routeweaver/router"
)

// verbs maps declaration verbs to the method passed to the registrar.
var verbs = map[string]string{
	"get":     http.MethodGet,
	"post":    http.MethodPost,
	"put":     http.MethodPut,
	"patch":   http.MethodPatch,
	"delete":  http.MethodDelete,
	"head":    http.MethodHead,
	"options": http.MethodOptions,
	"all":     router.AnyMethod,
}

// Method returns the HTTP method for a declaration verb. Verbs are matched
// case-insensitively; "all" yields router.AnyMethod.
func Method(verb string) (string, bool) {
	method, ok := verbs[strings.ToLower(verb)]
	return method, ok
}
