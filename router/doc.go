// Package router is the serving-layer side of route assembly. Registrar
// adapters commit (method, pattern, middleware chain, handler) tuples to a
// net/http ServeMux, a chi router, or a gin engine, and New wraps the finished
// routing table with process-wide middleware: panic recovery, OpenAPI
// validation, CORS, timeouts and request logging. ExampleNew_customOptions
// shows how built-in and custom middlewares combine.
package router
