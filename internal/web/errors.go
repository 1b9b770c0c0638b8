package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as JSON with a user-friendly message and a code
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusFor(err)) or passes its own status
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. Missing-column failures also carry the column list and the hint

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/JonMunkholm/parseos/internal/logging"
	"github.com/JonMunkholm/parseos/internal/sheet"
)

// Errors raised by the upload handler before any conversion runs.
var (
	errNoFile       = errors.New("no file provided")
	errFileTooLarge = errors.New("file too large")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error          string   `json:"error"`
	Message        string   `json:"message"`
	Action         string   `json:"action,omitempty"`
	Code           string   `json:"code"`
	MissingColumns []string `json:"missingColumns,omitempty"`
	Hint           string   `json:"hint,omitempty"`
}

// statusFor maps a conversion error to an HTTP status code.
func statusFor(err error) int {
	var (
		missing  *core.MissingColumnsError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.Is(err, core.ErrInvalidShape),
		errors.Is(err, core.ErrMissingSources),
		errors.As(err, &missing),
		errors.Is(err, errNoFile),
		errors.Is(err, sheet.ErrEmptyFile),
		errors.Is(err, sheet.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnknownFormat):
		return http.StatusNotFound
	case errors.Is(err, errFileTooLarge), errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyConversions):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error and writes a user-friendly JSON body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	resp := ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	}

	var missing *core.MissingColumnsError
	if errors.As(err, &missing) {
		if missing.Message != "" {
			resp.Error = missing.Message
		}
		resp.MissingColumns = missing.Columns
		resp.Hint = missing.Hint
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("json encode error", "error", err)
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
