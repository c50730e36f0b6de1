// Command server runs the survey manager HTTP API.
//
// @title           Survey Manager API
// @version         1.0
// @description     Surveys, respondents, questions and their responses.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/config"
	httpapi "github.com/tbourn/go-survey-backend/internal/http"
	"github.com/tbourn/go-survey-backend/internal/observability"
	"github.com/tbourn/go-survey-backend/internal/repo"
	"github.com/tbourn/go-survey-backend/internal/services"
	"github.com/tbourn/go-survey-backend/internal/sysutil"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

const shutdownGrace = 15 * time.Second

func main() {
	loaded, envErr := config.LoadDotEnv()
	cfg := config.MustLoad()

	logger := sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("dotenv")
	} else if len(loaded) > 0 {
		logger.Info().Strs("files", loaded).Msg("dotenv loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, version)
	if err != nil {
		logger.Fatal().Err(err).Msg("tracing setup")
	}

	db, err := repo.OpenDatabase(repo.Options{
		Driver:      cfg.DBDriver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
		Tracing:     cfg.OTEL.Enabled,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	if n, err := services.NewIdempotencyService(db, cfg.IdempotencyTTL).Purge(ctx); err != nil {
		logger.Warn().Err(err).Msg("purge idempotency keys")
	} else if n > 0 {
		logger.Info().Int64("purged", n).Msg("expired idempotency keys removed")
	}

	cat := catalog.New()
	if err := services.LoadCatalog(ctx, db, cat); err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}
	ids := services.NewClock(0)
	if err := services.SeedClock(ctx, db, ids); err != nil {
		logger.Fatal().Err(err).Msg("seed ids")
	}
	logger.Info().
		Int("surveys", len(cat.Surveys())).
		Uint64("version", cat.Version()).
		Msg("catalog loaded")

	if cfg.Auth.GeneratedSecret {
		logger.Warn().Msg("JWT_SECRET not set; sessions will not survive a restart")
	}
	signer := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.SessionTTL)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:      db,
		Catalog: cat,
		IDs:     ids,
		Signer:  signer,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownTracing(sctx); err != nil {
		logger.Error().Err(err).Msg("tracing shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info().Msg("bye")
}
