// Package routeweaver assembles an HTTP routing table from declaration
// files instead of hand-written registration code. Each JSON file under the
// routes directory maps URIs to verbs, and each verb names a controller
// action and an optional middleware chain. A reserved "*" key in a file
// overrides the URI prefix, the controller used by default and the
// middleware applied to every route in that file.
//
// # Packages
//
//   - declaration: reads and parses route files, comments allowed, keeping
//     the order keys appear in.
//   - registry: named modules of handlers and middleware that references
//     resolve against, plus reflection helpers to fill them from methods.
//   - assembler: resolves every declaration into a Route and registers the
//     result; nothing is registered when any reference fails to resolve.
//   - router: registrars for net/http, chi and gin plus the process-wide
//     middleware stack (recovery, OpenAPI validation, CORS, timeouts, logs).
//   - responder: JSON responses and problem documents with trace IDs.
//   - info: status, health, version, route table and OpenAPI endpoints.
//   - probe: readiness checks for databases and arbitrary functions.
//   - connections: opens Mongo, Postgres and Redis clients from config.
//   - config, logging, app: layered configuration, slog setup and the
//     runnable service that ties everything together.
//
// # Quick Start
//
//	controllers := registry.New[http.Handler]()
//	controllers.MustRegister("controllers/UsersController", registry.HandlerMethods(users, rsp))
//
//	middleware := registry.New[router.Middleware]()
//	middleware.MustRegister("middleware/auth", map[string]router.Middleware{"check": requireToken})
//
//	err := app.Run(ctx, cfg,
//	    app.WithControllers(controllers),
//	    app.WithMiddleware(middleware),
//	)
//
// With routes/users.json containing
//
//	{
//	  "*": { "URIPrefix": "/api/v1", "middleware": "auth.check" },
//	  "/users": { "get": {} }
//	}
//
// the service answers GET /api/v1/users with UsersController's index
// action behind auth.check.
package routeweaver
