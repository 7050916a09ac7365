// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.WithRequestID(requestID)
	}

	return l
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// LeadCaptured logs a lead intake event with its computed score.
func (l *Logger) LeadCaptured(leadID string, score int, grade, tier string) {
	l.Info("lead_captured",
		slog.String("lead_id", leadID),
		slog.Int("score", score),
		slog.String("grade", grade),
		slog.String("engagement", tier),
	)
}

// CRMSync logs the outcome of a CRM sync attempt.
func (l *Logger) CRMSync(leadID, platform string, success bool, reason string) {
	if success {
		l.Info("crm_sync",
			slog.String("lead_id", leadID),
			slog.String("platform", platform),
			slog.Bool("success", success),
		)
	} else {
		l.Warn("crm_sync",
			slog.String("lead_id", leadID),
			slog.String("platform", platform),
			slog.Bool("success", success),
			slog.String("reason", reason),
		)
	}
}

// ExportGenerated logs a completed spreadsheet export.
func (l *Logger) ExportGenerated(leadCount int, sizeBytes int64, destination string) {
	l.Info("export_generated",
		slog.Int("lead_count", leadCount),
		slog.Int64("size_bytes", sizeBytes),
		slog.String("destination", destination),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
