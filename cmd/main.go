package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "prusa_thermal/docs"
	"prusa_thermal/internal/config"
	"prusa_thermal/internal/handlers"
	"prusa_thermal/internal/logger"
	"prusa_thermal/internal/prusalink"
	"prusa_thermal/internal/repository"
	"prusa_thermal/internal/repository/db"
	"prusa_thermal/internal/server"
	"prusa_thermal/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       Prusa Thermal Bridge API
// @version                     1.0
// @description                 Exposes a PrusaLink printer as a temperature sensor accessory.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// PRUSA_CONFIG_FILE overrides configs/config.yml.
	cfg, err := config.Load(os.Getenv("PRUSA_CONFIG_FILE"))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("invalid configuration", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	device := cfg.Device()
	printer, err := prusalink.NewClient(device)
	if err != nil {
		log.Fatalw("invalid printer address", "err", err, "address", device.Address)
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, printer, device, cfg.Auth.SigningKey, log)
	apiHandler := handlers.NewHandler(services, log, handlers.WithPollInterval(cfg.Poll.Interval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Infow("starting poller", "address", device.Address, "interval", cfg.Poll.Interval, "max_delta", device.MaxDelta)
	go services.Poller.Run(ctx, cfg.Poll.Interval)

	srv := server.New(device.Timeout)
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the poller; an in-flight printer request is cancelled with it
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
