package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/account-viewer/internal/errs"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

// HandleError reports every failure, bad input included, as 500 carrying the
// underlying message; callers of the proxy only ever see success or a server error.
func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "invalid_input", e.Message)

	case *errs.ExternalServiceError:
		level := slog.LevelError
		if e.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", e.Service,
			"upstream_status", e.Status,
			"transient", e.Transient,
			"error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "upstream_error", e.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		msg := err.Error()
		if msg == "" {
			msg = "An unexpected error occurred"
		}
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", msg)
	}
}
