package cards

import "strings"

// Mask replaces every character of s with '*' except the trailing keep
// characters. Strings no longer than keep are returned unchanged, so an empty
// input stays empty.
func Mask(s string, keep int) string {
	if len(s) <= keep {
		return s
	}
	return strings.Repeat("*", len(s)-keep) + s[len(s)-keep:]
}
