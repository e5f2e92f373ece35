// Package declaration loads route declaration files. Each .json file in a
// routes directory describes one resource: URI patterns mapped to HTTP verbs,
// and for each verb an optional handler reference and middleware list. The
// reserved "*" key carries document-wide overrides. Files may contain // and
// /* */ comments and trailing commas. See ExampleParse.
package declaration
