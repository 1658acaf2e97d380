package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vendorhub/internal/metrics"
)

const unmatchedRoute = "unmatched"

type routeKey struct{}

// routeHolder receives the pattern of the mux that served the request.
type routeHolder struct {
	pattern string
}

// RoutePattern records the ServeMux pattern that matched the request, so
// MetricsMiddleware can label by route instead of by raw path. prefix is
// prepended for muxes mounted behind http.StripPrefix. The innermost mux to
// match wins.
func RoutePattern(prefix string, mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		holder, ok := r.Context().Value(routeKey{}).(*routeHolder)
		if !ok || holder.pattern != "" || r.Pattern == "" {
			return
		}
		pattern := r.Pattern
		if i := strings.IndexByte(pattern, ' '); i >= 0 {
			pattern = pattern[i+1:]
		}
		holder.pattern = prefix + pattern
	})
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "OTHER"
}

// MetricsMiddleware records request counts and latency. Requests no
// RoutePattern-wrapped mux matched share the "unmatched" path label.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		holder := &routeHolder{}
		rec := record(w)
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), routeKey{}, holder)))

		path := holder.pattern
		if path == "" {
			path = unmatchedRoute
		}
		method := methodLabel(r.Method)
		status := strconv.Itoa(rec.status)
		metrics.RequestCounter.WithLabelValues(method, path, status).Inc()
		metrics.RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	})
}
