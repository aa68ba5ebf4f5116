package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with scoring-domain helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScoringLogger logs a completed scoring operation.
func (l *Logger) ScoringLogger(operation string, category int, score, confidence float64, duration time.Duration, cacheHit bool) {
	l.Info("Scoring Completed",
		"operation", operation,
		"category", category,
		"score", score,
		"confidence", confidence,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// APIErrorLogger logs API errors with request context.
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// PerformanceLogger records a performance observation such as a slow
// request.
func (l *Logger) PerformanceLogger(metric string, value float64, unit string) {
	l.Warn("Performance Observation",
		"metric", metric,
		"value", value,
		"unit", unit,
	)
}
