package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"service-currencies/internal/logging"
	"service-currencies/internal/service/logger"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Audit пишет access-лог и фиксирует каждый запрос в request_log.
func Audit(reqLogger logger.RequestLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			logging.Info("request completed",
				zap.String("request_id", RequestIDFromContext(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(start)),
			)

			status := sw.status
			if err := reqLogger.LogRequest(r.Context(), r.URL.Path, &status); err != nil {
				logging.Warn("request audit failed", zap.Error(err))
			}
		})
	}
}
