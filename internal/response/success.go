package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Last-ditch logging; can't return an error now
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}

// WriteRaw passes an already encoded JSON document through untouched.
func (h *responseHandler) WriteRaw(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response body", "error", err)
	}
}
