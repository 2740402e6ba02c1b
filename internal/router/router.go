package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GregMSThompson/account-viewer/internal/handlers"
	"github.com/GregMSThompson/account-viewer/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	// Instrument wraps every request, typically metrics.Collector.Middleware.
	Instrument func(http.Handler) http.Handler
	Metrics    http.Handler
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	if opts.Instrument != nil {
		r.Use(opts.Instrument)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	ach := handlers.NewAccountHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Get("/healthz", hh.Health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Mount("/api/account", ach.AccountRoutes())
	return r
}
