package httpmetrics

import "strings"

// NormalizePath collapses identifier path segments so metric label
// cardinality stays bounded.
func NormalizePath(path string) string {
	if strings.HasPrefix(path, "/api/stories/") && path != "/api/stories/" {
		return "/api/stories/{id}"
	}
	return path
}
