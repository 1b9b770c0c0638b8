// Package logging configures log/slog and carries request-scoped fields
// through context.Context.
//
// chi's RequestID middleware stores an ID in the request context; loggers
// obtained through FromContext attach it as request_id so every entry of
// one request, conversion entries included, can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type fieldsKey struct{}

// Setup installs the global logger writing to stdout.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w. The CLI logs to stderr so the converted
// text on stdout stays clean.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ContextWith returns a copy of ctx whose loggers carry args in addition to
// any fields added earlier.
//
//	ctx = logging.ContextWith(ctx, "client_ip", ip)
//	logging.FromContext(ctx).Info("conversion started") // client_ip=...
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev, _ := ctx.Value(fieldsKey{}).([]any)
	fields := make([]any, 0, len(prev)+len(args))
	fields = append(fields, prev...)
	fields = append(fields, args...)
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// FromContext returns the default logger enriched with the request ID and
// the fields stored by ContextWith.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if fields, ok := ctx.Value(fieldsKey{}).([]any); ok && len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

// WithFields returns a logger for a multi-step operation.
//
//	logger := logging.WithFields(ctx, "conversion_id", id, "format", key)
//	logger.Info("conversion started")
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
