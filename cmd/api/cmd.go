package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/GregMSThompson/account-viewer/internal/bootstrap"
	treasuryclient "github.com/GregMSThompson/account-viewer/internal/client/treasury"
	"github.com/GregMSThompson/account-viewer/internal/config"
	"github.com/GregMSThompson/account-viewer/internal/handlers"
	"github.com/GregMSThompson/account-viewer/internal/metrics"
	"github.com/GregMSThompson/account-viewer/internal/response"
	"github.com/GregMSThompson/account-viewer/internal/router"
	"github.com/GregMSThompson/account-viewer/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg, err := config.Load(".")
	exitOnError("config load failed", err, slog.Default())
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector("account_proxy")
	exitOnError("metrics registration failed", collector.Register(reg), bs.Log)

	// upstream
	adapter, err := treasuryclient.NewAdapter(cfg.Upstream.BaseURL, bs.Credentials,
		treasuryclient.WithTimeout(cfg.Upstream.Timeout))
	exitOnError("upstream adapter failed", err, bs.Log)

	// services
	aserv := services.NewAccountService(adapter, collector)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.AccountSvc = aserv

	// router
	r := router.NewRouter(deps, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Instrument:     collector.Middleware,
		Metrics:        metrics.Handler(reg),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		bs.Log.Info("proxy listening", "port", cfg.Server.Port, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			exitOnError("server start failed", err, bs.Log)
		}
	}()

	<-ctx.Done()
	bs.Log.Warn("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	exitOnError("server forced to shutdown", srv.Shutdown(shutdownCtx), bs.Log)
	bs.Log.Info("server exited")
}
