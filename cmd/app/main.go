package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"account-activation-service/internal/config"
	pg "account-activation-service/internal/infra/db/postgres"
	"account-activation-service/internal/infra/logging"
	"account-activation-service/internal/infra/mail"
	"account-activation-service/internal/infra/metrics"
	red "account-activation-service/internal/infra/redis"
	"account-activation-service/internal/infra/sched"
	"account-activation-service/internal/infra/security"
	"account-activation-service/internal/infra/web"
	"account-activation-service/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode (console logs, no sampling)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()

	// ---- Repositories ----
	accountRepo := pg.NewAccountRepoCacheDecorator(pg.NewAccountRepo(pool), redisClient, cfg.Redis.TTL)
	codeRepo := pg.NewActivationCodeRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Adapters ----
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	mailer := mail.NewMailpitClient(cfg.Mail, logger)

	// ---- Use cases ----
	accountUC := usecase.NewAccountUseCase(accountRepo, hasher, logger)
	activationUC := usecase.NewActivationUseCase(accountUC, accountRepo, codeRepo, mailer, tm, cfg.Activation.CodeTTL, logger)

	// ---- Optional expired-code sweep ----
	if cfg.Activation.SweepInterval > 0 {
		worker := sched.NewSweepWorker(cfg.Activation.SweepInterval, codeRepo, logger)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("sweep worker stopped")
			}
		}()
	}

	// ---- HTTP ----
	srv := web.NewServer(accountUC, activationUC, logger)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
