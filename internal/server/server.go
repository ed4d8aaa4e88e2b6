// Package server boots the HTTP process: config, database, cache, storage,
// the order feed hub, routes, and graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bistrohq/bistro/app/repositories"
	"github.com/bistrohq/bistro/app/routes"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/config"
	"github.com/bistrohq/bistro/pkg/cache"
	"github.com/bistrohq/bistro/pkg/database"
	"github.com/bistrohq/bistro/pkg/event"
	"github.com/bistrohq/bistro/pkg/logger"
	"github.com/bistrohq/bistro/pkg/router"
	"github.com/bistrohq/bistro/pkg/schedule"
	"github.com/bistrohq/bistro/pkg/storage"
	"github.com/bistrohq/bistro/pkg/ws"
)

const shutdownTimeout = 10 * time.Second

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	// Optional Mongo log sink: when configured, every log line also lands
	// in a capped-style audit collection, alongside the stdout handler.
	if uri := config.LogMongoURI(); uri != "" {
		mh, err := logger.NewMongoHandler(uri, config.MongoDB(), "logs")
		if err != nil {
			logger.Warn("mongo log sink unavailable, continuing without it", "error", err)
		} else {
			defer mh.Close()
			logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Disconnect(context.Background())

	if err := cache.Connect(context.Background()); err != nil {
		// The menu cache degrades to pass-through without Redis.
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	hub := ws.NewHub()
	go hub.Run()

	// Fan recorded payments out to the live order feed.
	event.Listen(services.EventPaymentRecorded, func(payload interface{}) {
		rec, ok := payload.(services.PaymentRecorded)
		if !ok {
			return
		}
		msg, err := json.Marshal(rec)
		if err != nil {
			logger.Error("order feed: marshal", "error", err)
			return
		}
		hub.Broadcast <- msg
	})

	// Nightly report archive so admins have a history beyond the
	// on-demand export endpoint.
	statsSvc := services.NewStatsService(repositories.NewStatsRepository(database.DB))
	schedule.Cron("0 3 * * *").Name("order-stats-export").WithoutOverlapping().Run(func() {
		if _, err := statsSvc.Export(context.Background()); err != nil {
			logger.Error("scheduled export failed", "error", err)
		}
	})

	scheduleCtx, stopSchedule := context.WithCancel(context.Background())
	defer stopSchedule()
	schedule.Start(scheduleCtx)

	r := router.New()
	routes.RegisterAPI(r, database.DB, hub)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bistro listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
