package webserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildChiRouter creates the chi backend: full middleware stack, health and
// metrics routes, and the handler chain as the fallthrough for every other path.
func (s *Server) buildChiRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)
	if s.secCfg.RateLimit.Enabled {
		r.Use(rateLimit(s.secCfg.RateLimit.RequestsPerMinute, time.Minute))
	}

	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Handler-chain paths are not chi routes, so they arrive here with any method.
	r.NotFound(s.dispatch)
	r.MethodNotAllowed(s.dispatch)

	return r
}

// rateLimit limits requests per client IP with a sliding window.
func rateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, ErrCodeRateLimited, "too many requests")
		}),
	)
}
