package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "demob-match/docs" // Swagger docs
	"demob-match/internal/api"
	"demob-match/internal/auth"
	"demob-match/internal/config"
	"demob-match/internal/logger"
	"demob-match/internal/queue"
	"demob-match/internal/storage"
)

// @title Demob Match API
// @version 1.0
// @description Matches demobilizing employees to open positions and reports on the placement pipeline.

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <JWT>

func main() {
	configFile := flag.String("config", "", "Optional YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.EnvFile == "" {
		zlog.Warn(".env file not found, using environment variables")
	}

	zlog.Info("connecting to database", zap.String("driver", cfg.Database.Driver))
	db, err := storage.NewDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		zlog.Fatal("db open", zap.Error(err))
	}
	defer db.Close()
	versions, err := db.AppliedMigrations()
	if err != nil {
		zlog.Fatal("reading schema version", zap.Error(err))
	}
	zlog.Info("database connected", zap.Ints("migrations", versions))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var q queue.Queue
	if cfg.Redis.URL != "" {
		rq, err := queue.NewRedisQueue(ctx, cfg.Redis.URL, cfg.Worker.MaxAttempts, cfg.Worker.PollInterval)
		if err != nil {
			zlog.Fatal("redis queue", zap.Error(err))
		}
		defer rq.Close()
		q = rq
		zlog.Info("using redis re-match queue")
	}

	apiSrv, err := api.NewAPI(db, api.Options{
		Auth:         auth.NewService(cfg.JWT.Secret, auth.DefaultTokenTTL),
		Queue:        q,
		Logger:       zlog,
		DefaultRole:  cfg.Auth.DefaultRole,
		WorkerRate:   cfg.Worker.Rate,
		PollInterval: cfg.Worker.PollInterval,
		MaxAttempts:  cfg.Worker.MaxAttempts,

		EnforcePermissions: cfg.Auth.EnforcePermissions,
	})
	if err != nil {
		zlog.Fatal("api init", zap.Error(err))
	}
	workerDone := apiSrv.StartBackgroundWorkers(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(apiSrv),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // full matching runs and exports
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	zlog.Info("API server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Error("server", zap.Error(err))
		stop()
	}

	<-idleConnsClosed
	<-workerDone
	zlog.Info("shutdown complete")
}
