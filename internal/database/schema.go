// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// createTables creates the catalog tables and registry sequences.
//
// The movies.tags, movies.ratings, and movies.images columns carry the
// delimited string formats owned by internal/catalog. Registry ids come
// from sequences so they are never reused after a delete.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS tags_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS rating_dimensions_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS movies (
			title TEXT PRIMARY KEY,
			recommended BOOLEAN NOT NULL DEFAULT false,
			review TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '',
			ratings TEXT NOT NULL DEFAULT '',
			images TEXT NOT NULL DEFAULT '',
			added_date TIMESTAMP NOT NULL DEFAULT current_timestamp
		)`,

		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY DEFAULT nextval('tags_id_seq'),
			name TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS rating_dimensions (
			id INTEGER PRIMARY KEY DEFAULT nextval('rating_dimensions_id_seq'),
			name TEXT NOT NULL UNIQUE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_movies_added_date ON movies(added_date)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
