package viewer

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/account-viewer/internal/middleware"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

type pageLoader interface {
	AccountID() string
	Start(ctx context.Context, st *State) (wait func())
}

type pageHandlers struct {
	loader   pageLoader
	renderer *Renderer
}

func NewRouter(log *slog.Logger, loader pageLoader, renderer *Renderer) chi.Router {
	h := &pageHandlers{loader: loader, renderer: renderer}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", h.Page)
	r.Get("/healthz", h.Health)
	return r
}

// PageHref links to the page with the given row expanded.
func PageHref(exp Expansion) string {
	if exp.ID() == "" {
		return "/"
	}
	id := exp.ID()
	return "/?expanded=" + url.QueryEscape(id) + "#" + RowAnchor(id)
}

// Page is one "page load": both fetches start, the loading placeholder is
// flushed, and the loaded view follows once both have settled.
func (h *pageHandlers) Page(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	exp := ExpandedRow(r.URL.Query().Get("expanded"))

	st := NewState()
	wait := h.loader.Start(r.Context(), st)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := h.renderer.Head(w, h.loader.AccountID()); err != nil {
		log.Error("render head failed", "error", err)
		return
	}
	if err := h.renderer.Loading(w); err != nil {
		log.Error("render loading failed", "error", err)
		return
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	wait()
	snap := st.Snapshot()
	page := BuildPage(h.loader.AccountID(), snap, exp, PageHref)
	if err := h.renderer.Body(w, page); err != nil {
		log.Error("render body failed", "error", err)
		return
	}
	log.Info("page rendered", "status", snap.Status().String(), "transactions", page.Count)
}

func (h *pageHandlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
