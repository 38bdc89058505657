// Package util contains small helpers used across the application that
// don't belong to any other package
package util

import "strings"

// JoinConjunction joins items into an English list: "a", "a and b",
// "a, b, and c"
func JoinConjunction(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}

	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
