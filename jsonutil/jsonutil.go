// Package jsonutil wraps sonic for the encoding paths used across the module
// and converts comment-tolerant declaration text into strict JSON.
package jsonutil

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/tidwall/jsonc"
)

// api mirrors encoding/json behaviour (sorted map keys, HTML escaping) so
// payloads stay byte-compatible with the standard library.
var api = sonic.ConfigStd

// Marshal encodes v as JSON.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent encodes v as indented JSON.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// Encode streams v as JSON to w followed by a newline.
func Encode(w io.Writer, v any) error {
	return api.NewEncoder(w).Encode(v)
}

// Decode reads the next JSON value from r into v.
func Decode(r io.Reader, v any) error {
	return api.NewDecoder(r).Decode(v)
}

// Standardize removes // and /* */ comments and trailing commas from src.
// Comments are blanked rather than cut, so byte offsets reported by a later
// parse still point at the original text.
func Standardize(src []byte) []byte {
	return jsonc.ToJSON(src)
}
