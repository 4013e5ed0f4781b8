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

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm/logger"

	httpadp "kindnesscup/internal/adapter/http"
	guard "kindnesscup/internal/adapter/middleware"
	repo "kindnesscup/internal/adapter/repository/mysql"
	"kindnesscup/internal/config"
	"kindnesscup/internal/infrastructure/cache"
	"kindnesscup/internal/infrastructure/db"
	"kindnesscup/internal/infrastructure/logging"
	"kindnesscup/internal/usecase/donation"
	"kindnesscup/internal/usecase/report"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormLevel := logger.Warn
	if logging.IsDebug(cfg.LogLevel) {
		gormLevel = logger.Info
	}
	gdb, err := db.OpenGorm(cfg, db.WithLogger(log, gormLevel))
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	causes := repo.NewCauseRepository(gdb)
	donations := repo.NewDonationRepository(gdb)
	schema := repo.NewSchemaManager(gdb)

	donateUC := donation.NewUsecase(causes, donations, schema, repo.NewGormUoW(gdb), log)
	reportUC := report.NewUsecase(repo.NewReportRepository(gdb), schema, log)

	var submitGuard echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		submitGuard = guard.SubmissionGuard(rdb, cfg.IdempotencyTTL(), log)
	} else {
		log.Warn("REDIS_ADDR not set, form resubmissions are not de-duplicated")
	}

	renderer, err := httpadp.NewRenderer()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Renderer = renderer
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.Logger(),
		middleware.Recover(),
	)

	httpadp.Register(e,
		httpadp.NewHandler(schema),
		httpadp.NewDonationHandler(donateUC, cfg.ExposeDBErrors, log),
		httpadp.NewReportHandler(reportUC, cfg.ExposeDBErrors, log),
		submitGuard,
	)

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
