package middleware

import (
	"strings"
)

// IsQuietRoute reports whether path is polled by infrastructure or serves
// static documentation rather than API traffic.
func IsQuietRoute(path string) bool {
	quietRoutes := []string{
		"/health",
		"/metrics",
	}

	for _, route := range quietRoutes {
		if path == route {
			return true
		}
	}

	return strings.HasPrefix(path, "/apidocs/")
}
