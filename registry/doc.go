// Package registry maps logical module paths to named exports. Controllers
// and middleware register themselves at start-up, and the assembler resolves
// handler and middleware references with plain lookups instead of loading
// code by file name.
//
// Module paths are slash separated and relative to the registry root, for
// example "controllers/UsersController" or "middleware/auth". A lookup for
// the same module and export always returns the same value, so function
// identity can be compared across resolutions.
package registry
