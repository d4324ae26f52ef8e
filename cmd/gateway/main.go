package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	api "github.com/Reaishma/Automated-grading-app/internal/api/http"
	"github.com/Reaishma/Automated-grading-app/internal/app"
	auth "github.com/Reaishma/Automated-grading-app/internal/auth/middleware"
	"github.com/Reaishma/Automated-grading-app/internal/config"
	"github.com/Reaishma/Automated-grading-app/internal/logging"
	"github.com/Reaishma/Automated-grading-app/internal/storage"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg := config.FromEnv()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// --- Core ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	core, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer core.Close()

	// --- Auth (local JWT) ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret, cfg.InstructorUser, cfg.InstructorPassHash)
	if cfg.InstructorPassHash == "" {
		logger.Warn("INSTRUCTOR_PASS_HASH not set; dev login enabled", zap.String("user", cfg.InstructorUser))
	}

	deps := api.Deps{
		Service:     core.Service,
		Grader:      core.Engine,
		Auth:        authSvc,
		Events:      core.Events,
		Log:         logger.Named("http"),
		CORSOrigins: cfg.CORSOrigins,
		Ready:       func(r *http.Request) error { return core.Ready(r.Context()) },
	}
	if cfg.ReportsDir != "" {
		archive, err := storage.NewFSStore(cfg.ReportsDir)
		if err != nil {
			logger.Fatal("report archive", zap.Error(err))
		}
		deps.Archive = archive
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("store", string(cfg.StoreDriver)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}
