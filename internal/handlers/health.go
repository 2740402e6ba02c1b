package handlers

import (
	"net/http"

	"github.com/GregMSThompson/account-viewer/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{ResponseHandler: deps.ResponseHandler}
}

// Health never touches the upstream API.
func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
