// Package resolve implements PathResolver (component G): splitting a
// target-path string into its object path and leaf variable name, and
// walking either a `/slash/syntax` or `a.dot.syntax` path across the
// display graph and plain objects to the Object it names.
//
// Grounded on Gnash's as_environment.cpp (parse_path,
// find_object_slashsyntax, find_object_dotsyntax): this package is a
// direct, line-for-line-behavior port of those three functions into the
// arena-of-indices object model, plus the ".. ascends / leading '/'
// re-anchors / first-component-only global fallback" rules spec 4.3
// states explicitly.
package resolve

import "strings"

// ParsePath splits input into (path, leaf, slashBased) per spec 4.3:
// the first colon splits path from leaf and marks slash syntax; absent
// a colon, the last dot splits path from leaf and marks dot syntax;
// absent both, input is not a path at all and ok is false.
func ParsePath(input string) (path, leaf string, slashBased, ok bool) {
	if idx := strings.IndexByte(input, ':'); idx >= 0 {
		return input[:idx], input[idx+1:], true, true
	}
	if idx := strings.LastIndexByte(input, '.'); idx >= 0 {
		return input[:idx], input[idx+1:], false, true
	}
	return "", "", false, false
}
