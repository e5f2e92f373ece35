package router

import "testing"

func TestBraceParams(t *testing.T) {
	cases := map[string]string{
		"/users":                 "/users",
		"/users/:id":             "/users/{id}",
		"/users/:id/posts/:post": "/users/{id}/posts/{post}",
		"/users/{id}":            "/users/{id}",
		"/files/a:b":             "/files/a:b",
		"/:":                     "/:",
	}
	for in, want := range cases {
		if got := BraceParams(in); got != want {
			t.Fatalf("BraceParams(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColonParams(t *testing.T) {
	cases := map[string]string{
		"/users/{id}":  "/users/:id",
		"/users/:id":   "/users/:id",
		"/a/{x}/b/{y}": "/a/:x/b/:y",
		"/literal/{}":  "/literal/{}",
	}
	for in, want := range cases {
		if got := ColonParams(in); got != want {
			t.Fatalf("ColonParams(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServeMuxPattern(t *testing.T) {
	cases := []struct {
		method, pattern, want string
	}{
		{"GET", "/users/:id", "GET /users/{id}"},
		{"POST", "/", "POST /{$}"},
		{AnyMethod, "/hooks/", "/hooks/{$}"},
	}
	for _, tc := range cases {
		if got := serveMuxPattern(tc.method, tc.pattern); got != tc.want {
			t.Fatalf("serveMuxPattern(%q, %q) = %q, want %q", tc.method, tc.pattern, got, tc.want)
		}
	}
}
