package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/jobs"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/logger"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/routes"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the monthly snapshot job",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, _, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := newService(store)
	if err != nil {
		return err
	}

	scheduler, err := jobs.ScheduleSnapshots(cfg.SnapshotSchedule, jobs.NewMonthlySnapshot(svc, log), log)
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(svc, routes.Options{
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthRateLimitRPS:   cfg.AuthRateLimitRPS,
		AuthRateLimitBurst: cfg.AuthRateLimitBurst,
		Logger:             log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
