package info

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/routeweaver/assembler"
	"github.com/drblury/routeweaver/declaration"
	"github.com/drblury/routeweaver/router"
)

const openAPIVersion = "3.0.3"

// anyMethods are the operations emitted for routes declared with "all".
var anyMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// BuildOpenAPI generates an OpenAPI skeleton with one operation per route.
// Operations carry path parameters, a tag per declaration file and an
// operation ID of the form "Controller.action". When several routes share
// an action the first keeps the plain ID and the others are numbered
// ("Controller.action_2"). Bodies and response schemas are left to the API
// authors.
func BuildOpenAPI(title, version string, routes []assembler.Route) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
	}

	used := make(map[string]bool)
	for _, route := range routes {
		p := router.BraceParams(route.Pattern)
		methods := []string{route.Method}
		if route.Method == router.AnyMethod {
			methods = anyMethods
		}
		for _, method := range methods {
			if item := doc.Paths.Value(p); item != nil && item.GetOperation(method) != nil {
				continue
			}
			op := newOperation(route, p, method)
			op.OperationID = uniqueID(used, op.OperationID)
			doc.AddOperation(p, method, op)
		}
	}
	return doc
}

func newOperation(route assembler.Route, p, method string) *openapi3.Operation {
	controller := route.Controller
	if i := strings.LastIndex(controller, "/"); i >= 0 {
		controller = controller[i+1:]
	}

	op := openapi3.NewOperation()
	op.OperationID = controller + "." + route.Action
	if route.Method == router.AnyMethod {
		op.OperationID += "." + strings.ToLower(method)
	}
	op.Summary = controller + ":" + route.Action
	if tag := declaration.DocumentName(route.File); tag != "" {
		op.Tags = []string{tag}
	}
	for _, name := range pathParams(p) {
		op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithName("default", openapi3.NewResponse().WithDescription("Response of "+op.Summary)),
	)
	return op
}

func uniqueID(used map[string]bool, id string) string {
	candidate := id
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
	used[candidate] = true
	return candidate
}

// pathParams returns the names of the "{name}" segments of p, in order.
func pathParams(p string) []string {
	var names []string
	for segment := range strings.SplitSeq(p, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			name := strings.TrimSuffix(strings.TrimPrefix(segment, "{"), "}")
			name = strings.TrimSuffix(name, "...")
			if name != "" && name != "$" {
				names = append(names, name)
			}
		}
	}
	return names
}
