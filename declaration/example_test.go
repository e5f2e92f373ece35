package declaration_test

import (
	"fmt"

	"github.com/drblury/routeweaver/declaration"
)

func ExampleParse() {
	doc, err := declaration.Parse("users.json", []byte(`{
		// applies to every route below
		"*": { "URIPrefix": "/api/v1", "middleware": "auth.check" },
		"/users":     { "get": {}, "post": { "handler": "create" } },
		"/users/:id": { "get": { "handler": "show", "middleware": ["audit.record"] } }
	}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(doc.Name, *doc.Global.URIPrefix, doc.Global.Middleware)
	for _, route := range doc.Routes {
		for _, verb := range route.Verbs {
			fmt.Printf("%s %s handler=%q middleware=%v\n", verb.Method, route.URI, verb.Config.Handler, verb.Config.Middleware)
		}
	}

	// Output:
	// users /api/v1 [auth.check]
	// get /users handler="" middleware=[]
	// post /users handler="create" middleware=[]
	// get /users/:id handler="show" middleware=[audit.record]
}
