package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/config"
	"github.com/mamadbah2/shipment-tracker/internal/repository/memory"
	"github.com/mamadbah2/shipment-tracker/internal/repository/mongodb"
	"github.com/mamadbah2/shipment-tracker/internal/repository/sheets"
	"github.com/mamadbah2/shipment-tracker/internal/scheduler"
	"github.com/mamadbah2/shipment-tracker/internal/server/handlers"
	"github.com/mamadbah2/shipment-tracker/internal/server/router"
	manifestsvc "github.com/mamadbah2/shipment-tracker/internal/service/manifest"
	shipmentsvc "github.com/mamadbah2/shipment-tracker/internal/service/shipments"
	"github.com/mamadbah2/shipment-tracker/pkg/logger"
)

type store interface {
	shipmentsvc.Store
	Close(ctx context.Context) error
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewWithLevel(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	shipmentStore := openStore(cfg, baseLogger)
	defer func() {
		if err := shipmentStore.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close shipment store", zap.Error(err))
		}
	}()

	shipmentSvc := shipmentsvc.NewService(shipmentStore, logger.Named(baseLogger, "svc.shipments"))
	shipmentHandler := handlers.NewShipmentHandler(shipmentSvc, logger.Named(baseLogger, "handlers.shipments"))
	engine := router.New(shipmentHandler, logger.Named(baseLogger, "router"))

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}

		manifestSvc := manifestsvc.NewService(shipmentSvc, sheetsRepo, cfg.Sheets.SheetName, logger.Named(baseLogger, "svc.manifest"))
		sched, err := scheduler.NewScheduler(cfg.Export, manifestSvc, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("google sheets credentials missing, manifest export disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(cfg *config.Config, baseLogger *zap.Logger) store {
	if cfg.Store.Driver == config.StoreDriverMemory {
		baseLogger.Warn("using in-memory shipment store, data is lost on restart")
		return memory.NewShipmentRepository()
	}

	repo, err := mongodb.NewShipmentRepository(context.Background(), cfg.MongoDB, logger.Named(baseLogger, "repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	return repo
}
