package jsonutil_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/drblury/routeweaver/jsonutil"
)

func Example() {
	type mappedRoute struct {
		Method  string `json:"method"`
		Pattern string `json:"pattern"`
		Action  string `json:"action"`
	}

	route := mappedRoute{
		Method:  "GET",
		Pattern: "/api/v1/users",
		Action:  "index",
	}

	data, _ := jsonutil.Marshal(route)
	fmt.Println(string(data))

	var decoded mappedRoute
	_ = jsonutil.Unmarshal(data, &decoded)
	fmt.Println(decoded.Pattern)

	buf := &bytes.Buffer{}
	_ = jsonutil.Encode(buf, route)

	var streamed mappedRoute
	_ = jsonutil.Decode(buf, &streamed)
	fmt.Println(streamed.Action)

	// Output:
	// {"method":"GET","pattern":"/api/v1/users","action":"index"}
	// /api/v1/users
	// index
}

func ExampleMarshalIndent() {
	type verbConfig struct {
		Handler    string   `json:"handler"`
		Middleware []string `json:"middleware"`
	}

	data, err := jsonutil.MarshalIndent(verbConfig{
		Handler:    "UsersController:show",
		Middleware: []string{"auth.check", "audit.record"},
	}, "", "  ")
	if err != nil {
		fmt.Println("marshal error:", err)
		return
	}

	fmt.Println(strings.TrimSpace(string(data)))

	// Output:
	// {
	//   "handler": "UsersController:show",
	//   "middleware": [
	//     "auth.check",
	//     "audit.record"
	//   ]
	// }
}

func ExampleStandardize() {
	declaration := []byte(`{
  // listing is public
  "/users": { "get": { "handler": "index" }, },
}`)

	var decoded map[string]map[string]map[string]string
	if err := jsonutil.Unmarshal(jsonutil.Standardize(declaration), &decoded); err != nil {
		fmt.Println("unmarshal error:", err)
		return
	}
	fmt.Println(decoded["/users"]["get"]["handler"])

	// Output:
	// index
}
