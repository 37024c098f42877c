package http

import (
	"net/http"
	"runtime/debug"
	"strconv"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/common/httpmetrics"
	"github.com/kariua-parish/parish-site/internal/common/logger"
	"github.com/kariua-parish/parish-site/internal/observability/metrics"
)

// RecoveryMiddleware turns a handler panic into the opaque 500 envelope. A
// panic after the handler has started writing can only be logged.
func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"method": r.Method,
					"action": "panic_recovered",
				}).Criticalf("panic recovered: %v\n%s", rec, debug.Stack())

				metrics.HTTPErrorsTotal.WithLabelValues(
					strconv.Itoa(http.StatusInternalServerError),
					httpmetrics.NormalizePath(r.URL.Path),
					r.Method,
				).Inc()

				WriteErrorEnvelope(w, http.StatusInternalServerError, CodeInternal, commonerrors.ErrInternalError.Message(), nil, TraceIDFromContext(r.Context()))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
