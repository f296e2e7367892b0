// ABOUTME: Utility functions for parsing integers from strings
// ABOUTME: Provides safe parsing with default values for query parameters

package parse

import "strconv"

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// IntOrDefault parses an integer from a string, returning def when the
// string is empty. A present but unparsable value yields 0 so callers can
// reject it rather than silently applying the default.
func IntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return IntOrZero(s)
}
