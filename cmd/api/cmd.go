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

	"github.com/GregMSThompson/store-tracker/internal/bootstrap"
	"github.com/GregMSThompson/store-tracker/internal/config"
	"github.com/GregMSThompson/store-tracker/internal/handlers"
	"github.com/GregMSThompson/store-tracker/internal/response"
	"github.com/GregMSThompson/store-tracker/internal/router"
	"github.com/GregMSThompson/store-tracker/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	log := slog.Default()
	exitOnError("invalid configuration", cfg.Validate(), log)

	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	passcode, err := bs.AdminPasscode(context.Background(), cfg)
	exitOnError("admin passcode unavailable", err, bs.Log)

	// services
	ledgerSvc := services.NewLedgerService(bs.Records, bs.Location)
	lifecycleSvc := services.NewLifecycleService(bs.Records)
	reportSvc := services.NewReportService(ledgerSvc, cfg.BrandName, bs.Location)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.LedgerSvc = ledgerSvc
	deps.LifecycleSvc = lifecycleSvc
	deps.ReportSvc = reportSvc
	deps.AdminPasscode = passcode
	deps.DeletedLimit = cfg.DeletedLimit

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		bs.Log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown error", "error", err)
		}
	}()

	bs.Log.Info("starting server", "port", cfg.Port, "backend", cfg.Backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server start failed", err, bs.Log)
	}
	bs.Log.Info("server stopped")
}
