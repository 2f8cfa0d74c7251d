// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package main is the entry point for the Filmoteka server.
//
// Filmoteka is a self-hosted admin tool for a personal movie catalog:
// records with tags, per-dimension ratings, review text, and cover
// images, stored in an embedded DuckDB file with images on disk.
//
// The server initializes components in order:
//
//  1. Configuration: layered defaults, optional YAML file, environment
//     variables (koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Database: embedded DuckDB with schema creation and registry
//     seeding
//  4. Images: disk store, ingest pipeline, orphan sweeper
//  5. HTTP server: chi router under a suture supervision tree
//
// Shutdown is graceful on SIGINT and SIGTERM: the listener stops
// accepting, in-flight requests get the configured timeout to finish,
// then the database closes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/filmoteka/filmoteka/internal/api"
	"github.com/filmoteka/filmoteka/internal/catalog"
	"github.com/filmoteka/filmoteka/internal/config"
	"github.com/filmoteka/filmoteka/internal/database"
	"github.com/filmoteka/filmoteka/internal/images"
	"github.com/filmoteka/filmoteka/internal/logging"
	"github.com/filmoteka/filmoteka/internal/supervisor"
	"github.com/filmoteka/filmoteka/internal/supervisor/services"
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
	logging.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("Starting Filmoteka")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	store, err := images.NewDiskStore(cfg.Images.Directory)
	if err != nil {
		return fmt.Errorf("failed to open image store: %w", err)
	}
	ingestor := images.NewIngestor(store, cfg.Images.TargetHeight,
		float32(cfg.Images.Quality), cfg.Images.MaxConcurrentIngests)
	sweeper := images.NewSweeper(store, db, images.SweeperConfig{
		Interval: cfg.Images.SweepInterval,
		MinAge:   cfg.Images.SweepMinAge,
	})

	svc := catalog.NewService(db, ingestor, nil)

	handler := api.NewHandler(svc, db, ingestor, store, cfg)
	router := api.NewRouter(handler).Setup()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.Timeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeConfig)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	tree.AddMaintenanceService(sweeper)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
