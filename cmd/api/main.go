package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/printforge/catalog-api/internal/api"
	"github.com/printforge/catalog-api/internal/infrastructure/config"
	mongodb "github.com/printforge/catalog-api/internal/infrastructure/db/mongo"
	"github.com/printforge/catalog-api/internal/infrastructure/identity"
	"github.com/printforge/catalog-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	if err := mongodb.NewProductRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	verifier := identity.NewVerifier(identity.Config{
		TenantID: cfg.AzureAD.TenantID,
		Issuer:   cfg.AzureAD.Issuer(),
		Audience: cfg.AzureAD.ResolvedAudience(),
		JWKSURL:  cfg.AzureAD.JWKSURL(),
	}, log)

	e := api.NewRouter(db, verifier, cfg.Origins(), log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("catalog api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	_ = client.Disconnect(shutdownCtx)
}
