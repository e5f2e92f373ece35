// Package info exposes build metadata, health probes and introspection of
// the assembled routing table: the registered routes as JSON and an OpenAPI
// 3 skeleton generated from them.
//
// See ExampleInfoHandler_full for a runnable wiring of the handler and
// probes, and ExampleInfoHandler_Register for mounting the endpoints on a
// serving layer.
package info
