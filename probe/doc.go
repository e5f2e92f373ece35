// Package probe turns database, cache, HTTP and custom ping functions into
// health checks. The same checks back the /readyz endpoint in package info
// and the readiness gate the assembler passes before it registers routes,
// so a controller never serves traffic before its connections are up.
//
// See ExampleRun and ExampleHTTPCheck_Probe for quick-start
// patterns.
package probe
