package http

import (
	"net/http"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/common/httpmetrics"
	"github.com/kariua-parish/parish-site/internal/common/logger"
)

type BaseHandlerOptions struct {
	// MaxRequestSize defaults to constants.DefaultMaxRequestSize when zero.
	MaxRequestSize        int64
	ContentSecurityPolicy string
	// RateLimiter is optional; nil serves every request.
	RateLimiter *PathRateLimiter
}

// BuildBaseHandler wraps the route mux in the middleware every parish
// endpoint shares. Rate limiting runs inside the trace and metrics layers so
// 429 responses carry a trace id and are counted.
func BuildBaseHandler(appName string, log *logger.Logger, handler http.Handler, opts BaseHandlerOptions) http.Handler {
	maxRequestSize := opts.MaxRequestSize
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSize
	}

	if opts.RateLimiter != nil {
		handler = opts.RateLimiter.Middleware(handler)
	}

	metrics := httpmetrics.New(appName)
	recovery := RecoveryMiddleware(log)
	limit := MaxRequestSizeMiddleware(maxRequestSize)
	csp := ContentSecurityPolicyMiddleware(opts.ContentSecurityPolicy)

	return SecurityHeadersMiddleware(csp(TraceIDMiddleware(recovery(limit(metrics.Wrap(handler))))))
}
