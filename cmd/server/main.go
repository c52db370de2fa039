// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/castmatch/internal/api"
	"github.com/tomtom215/castmatch/internal/config"
	"github.com/tomtom215/castmatch/internal/logging"
	"github.com/tomtom215/castmatch/internal/session"
	"github.com/tomtom215/castmatch/internal/supervisor"
	"github.com/tomtom215/castmatch/internal/supervisor/services"
	ws "github.com/tomtom215/castmatch/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("catalog", catalogLabel(cfg.Catalog.Path)).
		Str("session_store", cfg.Session.Store).
		Int("port", cfg.Server.Port).
		Msg("Starting Castmatch")
	logging.Debug().
		Str("vocabulary", catalogLabel(cfg.Semantic.VocabularyPath)).
		Dur("session_ttl", cfg.Session.TTL).
		Int("semantic_cache_size", cfg.Semantic.CacheSize).
		Msg("Engine configuration")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := session.Open(sessionOptions(&cfg.Session), logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	engines, err := buildEngines(ctx, cfg, store, logger)
	if err != nil {
		// Fatal skips deferred calls; close the store first.
		_ = store.Close()
		logging.Fatal().Err(err).Msg("Failed to build ranking engines")
	}

	hub := ws.NewHub(logger)
	handler, err := api.NewHandler(api.Deps{
		Context:     engines.Context,
		Recommender: engines.Recommender,
		Intent:      engines.Intent,
		Semantic:    engines.Semantic,
		Personal:    engines.Personal,
		Store:       store,
		StoreType:   session.StoreType(cfg.Session.Store),
		Hub:         hub,
		API:         cfg.API,
	}, logger)
	if err != nil {
		_ = store.Close()
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(handler, logger).SetupChi(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		_ = store.Close()
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddSessionService(services.NewSessionSweeperService(store, cfg.Session.CleanupInterval, logger))
	tree.AddAPIService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly once and is never closed.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	stop()
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Castmatch stopped")
}

// catalogLabel names a configured file, or "embedded" when unset.
func catalogLabel(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
