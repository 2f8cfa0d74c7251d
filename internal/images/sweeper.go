// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package images

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/filmoteka/filmoteka/internal/logging"
	"github.com/filmoteka/filmoteka/internal/metrics"
)

// ReferenceSource reports the set of image filenames currently referenced
// by any catalog record. Implemented by the database layer.
type ReferenceSource interface {
	ReferencedImages(ctx context.Context) (map[string]struct{}, error)
}

// Sweeper periodically deletes stored images referenced by no catalog
// record. Record updates reconcile their own orphans; the sweeper catches
// the leak left by a crash between a record write and its reconcile, and
// by uploads whose record was never submitted.
//
// Only files matching the generated name pattern are ever touched, and
// files younger than MinAge are skipped so an upload racing a sweep is
// not collected before its record lands.
type Sweeper struct {
	store    Store
	refs     ReferenceSource
	interval time.Duration
	minAge   time.Duration
}

// SweeperConfig configures a Sweeper.
type SweeperConfig struct {
	// Interval between sweeps. Default: 1h.
	Interval time.Duration

	// MinAge a stored file must reach before it can be collected.
	// Default: 1h.
	MinAge time.Duration
}

// NewSweeper creates a sweeper over the given store and reference source.
func NewSweeper(store Store, refs ReferenceSource, cfg SweeperConfig) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.MinAge <= 0 {
		cfg.MinAge = time.Hour
	}
	return &Sweeper{
		store:    store,
		refs:     refs,
		interval: cfg.Interval,
		minAge:   cfg.MinAge,
	}
}

// Serve implements suture.Service, sweeping on a fixed interval until the
// context is canceled. Sweep failures are logged and the next tick tries
// again; they never crash the service.
func (s *Sweeper) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				logging.Warn().Err(err).Msg("Orphan sweep failed")
			}
		}
	}
}

// Sweep performs one pass: list stored files, subtract referenced ones,
// delete the remainder. Returns the number of orphans deleted. Individual
// delete failures are logged and skipped; only listing failures surface.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	start := time.Now()

	stored, err := s.store.List()
	if err != nil {
		return 0, err
	}

	referenced, err := s.refs.ReferencedImages(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.minAge)
	deleted := 0
	for _, filename := range stored {
		if !IsStoredName(filename) {
			continue
		}
		if _, ok := referenced[filename]; ok {
			continue
		}
		if storedAt, ok := storedTime(filename); !ok || storedAt.After(cutoff) {
			continue
		}
		if err := s.store.Delete(filename); err != nil {
			logging.Warn().Err(err).Str("filename", filename).Msg("Failed to delete orphaned image")
			continue
		}
		deleted++
	}

	metrics.RecordSweep(time.Since(start), deleted)
	if deleted > 0 {
		logging.Info().Int("deleted", deleted).Dur("took", time.Since(start)).Msg("Orphan sweep complete")
	}
	return deleted, nil
}

// String identifies the service in supervisor logs.
func (s *Sweeper) String() string {
	return "orphan-sweeper"
}

// storedTime extracts the unix-seconds prefix from a generated filename.
func storedTime(filename string) (time.Time, bool) {
	idx := strings.Index(filename, "_")
	if idx <= 0 {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(filename[:idx], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
