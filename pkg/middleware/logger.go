package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/ctxkeys"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

// RequestLogger logs incoming HTTP requests with contextual fields.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			entry := log.WithContext(r.Context())

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Float64("latency_ms", float64(time.Since(start).Milliseconds())),
			}
			if userID, ok := ctx.Value(ctxkeys.UserIDKey).(string); ok && userID != "" {
				fields = append(fields, zap.String("user_id", userID))
			}

			switch {
			case status >= 500:
				entry.Error("HTTP request", fields...)
			case status >= 400:
				entry.Warn("HTTP request", fields...)
			default:
				entry.Info("HTTP request", fields...)
			}
		})
	}
}

// Compose chains middlewares outermost-first.
func Compose(mws ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
