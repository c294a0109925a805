package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewRouter mounts the health endpoints. Only submissions are rate limited
// since they are the only route that reaches the remote service.
func NewRouter(handler *HealthHandler, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health/advise", handler.Advise)
	mux.HandleFunc("/health/validate", handler.Validate)
	mux.Handle(
		"/health/submit",
		RateLimitMiddleware(
			limiter,
			logger,
			http.HandlerFunc(handler.Submit),
		),
	)
	mux.HandleFunc("/health/results/{userID}", handler.Results)
	mux.HandleFunc("/health/history/{userID}", handler.History)

	return RequestLogMiddleware(logger, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogMiddleware tags every request with an X-Request-ID and logs its outcome.
func RequestLogMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}
