// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the assembled configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateImages() error {
	if c.Images.Directory == "" {
		return fmt.Errorf("IMAGES_DIR must not be empty")
	}
	if c.Images.TargetHeight < 1 {
		return fmt.Errorf("IMAGES_TARGET_HEIGHT must be positive, got %d", c.Images.TargetHeight)
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return fmt.Errorf("IMAGES_QUALITY must be between 1 and 100, got %d", c.Images.Quality)
	}
	if c.Images.MaxUploadBytes < 1 {
		return fmt.Errorf("IMAGES_MAX_UPLOAD must be positive, got %d", c.Images.MaxUploadBytes)
	}
	if c.Images.MaxConcurrentIngests < 1 {
		return fmt.Errorf("IMAGES_MAX_CONCURRENT must be positive, got %d", c.Images.MaxConcurrentIngests)
	}
	if c.Images.SweepInterval <= 0 {
		return fmt.Errorf("IMAGES_SWEEP_INTERVAL must be positive, got %s", c.Images.SweepInterval)
	}
	if c.Images.SweepMinAge < 0 {
		return fmt.Errorf("IMAGES_SWEEP_MIN_AGE must not be negative, got %s", c.Images.SweepMinAge)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be positive, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must not be smaller than API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
