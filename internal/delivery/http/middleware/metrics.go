package middleware

import (
	"net/http"
	"strconv"
	"time"

	"campusevents/internal/telemetry"
)

// Metrics records request count, latency and in-flight requests. Requests are labelled by
// their ServeMux pattern to keep label cardinality bounded.
func Metrics(m *telemetry.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		start := time.Now()
		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
	})
}
