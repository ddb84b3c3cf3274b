package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request with its method, path, caller identity,
// status and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Milliseconds()
		logger := slog.Info
		if rec.status >= 500 {
			logger = slog.Error
		} else if rec.status >= 400 {
			logger = slog.Warn
		}
		logger("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"member_id", GetMemberID(r.Context()),
			"duration_ms", duration,
		)
	})
}
