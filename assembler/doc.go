// Package assembler turns declaration documents into registered routes.
//
// For every document it computes a Scope from the wildcard overrides, then
// for every URI and verb it resolves the handler reference against the
// controller registry and the middleware references against the middleware
// registry. All routes are resolved before the first one is handed to the
// serving layer, so a bad reference leaves the routing table untouched.
//
// A minimal wiring looks like this:
//
//	controllers := registry.New[http.Handler]()
//	controllers.MustRegister("controllers/UsersController", registry.HandlerMethods(&users{}, rsp))
//
//	middleware := registry.New[router.Middleware]()
//	middleware.MustRegister("middleware/auth", map[string]router.Middleware{"check": auth})
//
//	a := assembler.New(assembler.DefaultConfig(), controllers, middleware)
//	routes, err := a.Assemble(ctx, router.NewChiRegistrar(mux))
package assembler
