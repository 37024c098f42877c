package httpmetrics

import "github.com/kariua-parish/parish-site/internal/common/constants"

// UnmatchedPath labels every request outside the registered routes.
const UnmatchedPath = "unmatched"

var knownRoutes = map[string]struct{}{
	constants.RouteHealth:           {},
	constants.RoutePrayerIntentions: {},
	constants.RouteChat:             {},
	constants.RouteMetrics:          {},
}

// NormalizePath keeps registered routes and folds everything else into a
// single label, so scanners hitting random paths cannot grow the series.
func NormalizePath(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return UnmatchedPath
}
