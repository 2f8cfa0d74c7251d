// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package config

import "time"

// Config holds all runtime configuration for the service, assembled
// from defaults, an optional YAML file, and environment variables.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Images   ImagesConfig   `koanf:"images"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig controls the embedded DuckDB instance.
type DatabaseConfig struct {
	// Path is the database file. Empty opens an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads caps DuckDB worker threads. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`
	// SeedDefaults inserts the preset tag and rating dimension
	// vocabulary on startup when the registries are missing entries.
	SeedDefaults bool `koanf:"seed_defaults"`
}

// ImagesConfig controls the image ingest pipeline and the orphan
// sweeper.
type ImagesConfig struct {
	Directory            string        `koanf:"directory"`
	TargetHeight         int           `koanf:"target_height"`
	Quality              int           `koanf:"quality"`
	MaxUploadBytes       int64         `koanf:"max_upload_bytes"`
	MaxConcurrentIngests int           `koanf:"max_concurrent_ingests"`
	SweepInterval        time.Duration `koanf:"sweep_interval"`
	// SweepMinAge keeps just-uploaded files out of the sweeper's reach
	// until their catalog record has had time to land.
	SweepMinAge time.Duration `koanf:"sweep_min_age"`
}

// APIConfig controls response paging.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig controls CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
