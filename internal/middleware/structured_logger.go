package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const slowRequestThreshold = 2 * time.Second

// Logging logs one line per completed request with status, duration and
// response size, using the request-scoped logger from RequestID.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(GetRequestStart(r.Context()))
			logger := GetRequestLogger(r.Context())

			logger.Info("Request completed",
				zap.Int("status", rw.status),
				zap.Duration("duration", duration),
				zap.Int64("response_size", rw.bytesWritten),
			)

			if duration > slowRequestThreshold {
				logger.Warn("Slow request",
					zap.Duration("duration", duration),
				)
			}
		})
	}
}

// responseWriter captures the status code and bytes written
type responseWriter struct {
	http.ResponseWriter
	status       int
	bytesWritten int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(data []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(data)
	rw.bytesWritten += int64(n)
	return n, err
}
