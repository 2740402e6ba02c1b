package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/account-viewer/internal/errs"
	"github.com/GregMSThompson/account-viewer/internal/response"
	"github.com/GregMSThompson/account-viewer/internal/services"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountID string) (services.ForwardResult, error)
	ListTransactions(ctx context.Context, accountID string) (services.ForwardResult, error)
}

type accountHandlers struct {
	ResponseHandler response.ResponseHandler
	AccountSvc      AccountService
}

func NewAccountHandlers(deps *Deps) *accountHandlers {
	return &accountHandlers{
		ResponseHandler: deps.ResponseHandler,
		AccountSvc:      deps.AccountSvc,
	}
}

func (h *accountHandlers) AccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{accountId}", func(r chi.Router) {
		r.Get("/", h.GetAccount)
		r.Get("/transaction", h.ListTransactions)
	})
	return r
}

func (h *accountHandlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	res, err := h.AccountSvc.GetAccount(r.Context(), accountID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteRaw(w, r, res.Status, res.Body)
}

func (h *accountHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	res, err := h.AccountSvc.ListTransactions(r.Context(), accountID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteRaw(w, r, res.Status, res.Body)
}

// accountIDParam returns the decoded account id. chi routes on RawPath when the
// request carried escapes such as %2F, and then hands the segment over still encoded.
func accountIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "accountId")
	if r.URL.RawPath == "" {
		return id, nil
	}
	decoded, err := url.PathUnescape(id)
	if err != nil {
		return "", errs.NewValidationError("account id is not a valid path segment")
	}
	return decoded, nil
}
