// Package strings holds the small string and slice helpers shared by routing and middleware
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix turns " meta/ " into "/meta". The root path itself is refused
// since a module mounted at "/" should mount in place instead
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/ ")
	if s == "/" {
		panic("strings: a non-root mount prefix is required")
	}
	return s
}
