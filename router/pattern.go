package router

import "strings"

// BraceParams rewrites ":name" path segments to "{name}", the parameter
// syntax of net/http and chi. Other segments are left untouched.
func BraceParams(pattern string) string {
	return rewriteSegments(pattern, func(segment string) string {
		if name, ok := strings.CutPrefix(segment, ":"); ok && name != "" {
			return "{" + name + "}"
		}
		return segment
	})
}

// ColonParams rewrites "{name}" path segments to ":name", the parameter
// syntax of gin.
func ColonParams(pattern string) string {
	return rewriteSegments(pattern, func(segment string) string {
		if len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			return ":" + segment[1:len(segment)-1]
		}
		return segment
	})
}

func rewriteSegments(pattern string, rewrite func(string) string) string {
	segments := strings.Split(pattern, "/")
	for i, segment := range segments {
		segments[i] = rewrite(segment)
	}
	return strings.Join(segments, "/")
}

// serveMuxPattern builds a ServeMux pattern that matches the path exactly.
// ServeMux treats a trailing slash as a prefix match, so such patterns are
// anchored with {$}.
func serveMuxPattern(method, pattern string) string {
	p := BraceParams(pattern)
	if strings.HasSuffix(p, "/") {
		p += "{$}"
	}
	if method == AnyMethod {
		return p
	}
	return method + " " + p
}
