package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ValidationErrorResponse carries field-level validation failures.
type ValidationErrorResponse struct {
	Errors  map[string][]string `json:"errors"`
	TraceID string              `json:"trace_id,omitempty"`
}

// MessageResponse is the body of successful operations that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("message", message))

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a JSON error response and also logs the underlying error.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: Logged at DEBUG level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		TraceID: traceID,
	})
}

// RespondWithValidationError writes 400 with the field map of verr.
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, verr *domain.ValidationError) {
	logger.FromContext(r.Context()).Debug("request failed validation",
		slog.String("error", verr.Error()))

	RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
		Errors:  verr.Fields,
		TraceID: GetTraceID(r.Context()),
	})
}
