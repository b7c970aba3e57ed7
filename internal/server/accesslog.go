package server

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog returns a middleware that writes one log entry per
// request. Responses with status >= 400 are logged at warn level,
// everything else at info.
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &responseRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.Status()

			level := zapcore.InfoLevel
			if status >= http.StatusBadRequest {
				level = zapcore.WarnLevel
			}

			ce := log.Check(level, "request")
			if ce == nil {
				return
			}

			path := r.URL.Path
			if raw := r.URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			ce.Write(
				zap.String("client", clientIP(r)),
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.String("proto", r.Proto),
				zap.Int("status", status),
				zap.String("status_text", http.StatusText(status)),
				zap.Int64("size_bytes", rec.size),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter

	status int
	size   int64
}

func (r *responseRecorder) WriteHeader(code int) {
	// 1xx are interim responses, the final status comes later
	if r.status == 0 && (code >= 200 || code == http.StatusSwitchingProtocols) {
		r.status = code
	}

	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}

	n, err := r.ResponseWriter.Write(b)
	r.size += int64(n)

	return n, err
}

func (r *responseRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}

	return r.status
}

func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
