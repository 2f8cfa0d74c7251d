// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/filmoteka/filmoteka/internal/metrics"
	"github.com/filmoteka/filmoteka/internal/models"
)

// ListTags returns every tag in the registry ordered by id.
func (db *DB) ListTags(ctx context.Context) ([]models.NamedEntity, error) {
	return db.listRegistry(ctx, "tags")
}

// ListDimensions returns every rating dimension ordered by id.
func (db *DB) ListDimensions(ctx context.Context) ([]models.NamedEntity, error) {
	return db.listRegistry(ctx, "rating_dimensions")
}

func (db *DB) listRegistry(ctx context.Context, table string) ([]models.NamedEntity, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, table))
	metrics.RecordDBQuery("list", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer closeRows(rows)

	entities := make([]models.NamedEntity, 0, 16)
	for rows.Next() {
		var e models.NamedEntity
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, err)
	}
	return entities, nil
}

// AddTag inserts a new tag and returns it with its assigned id.
// An existing tag with the same name surfaces as ErrConflict.
func (db *DB) AddTag(ctx context.Context, name string) (*models.NamedEntity, error) {
	return db.addRegistryEntry(ctx, "tags", name)
}

// AddDimension inserts a new rating dimension and returns it with its
// assigned id. An existing dimension with the same name surfaces as
// ErrConflict.
func (db *DB) AddDimension(ctx context.Context, name string) (*models.NamedEntity, error) {
	return db.addRegistryEntry(ctx, "rating_dimensions", name)
}

func (db *DB) addRegistryEntry(ctx context.Context, table, name string) (*models.NamedEntity, error) {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (name) VALUES (?) ON CONFLICT DO NOTHING`, table), name)
	metrics.RecordDBQuery("insert", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows for %s: %w", table, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%s name %q: %w", table, name, ErrConflict)
	}

	var e models.NamedEntity
	err = db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, name FROM %s WHERE name = ?`, table), name).
		Scan(&e.ID, &e.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read back %s entry: %w", table, err)
	}
	return &e, nil
}

// RenameTag changes the name of an existing tag. Movie records keep
// referring to the tag by id, so their persisted tag strings are
// untouched.
func (db *DB) RenameTag(ctx context.Context, id int, name string) error {
	return db.renameRegistryEntry(ctx, "tags", id, name)
}

// RenameDimension changes the name of an existing rating dimension.
func (db *DB) RenameDimension(ctx context.Context, id int, name string) error {
	return db.renameRegistryEntry(ctx, "rating_dimensions", id, name)
}

func (db *DB) renameRegistryEntry(ctx context.Context, table string, id int, name string) error {
	var existingID int
	err := db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, table), name).Scan(&existingID)
	switch {
	case err == nil:
		if existingID == id {
			return nil
		}
		return fmt.Errorf("%s name %q: %w", table, name, ErrConflict)
	case errors.Is(err, sql.ErrNoRows):
		// name is free
	default:
		return fmt.Errorf("failed to check %s name: %w", table, err)
	}

	start := time.Now()
	result, err := db.conn.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET name = ? WHERE id = ?`, table), name, id)
	metrics.RecordDBQuery("update", table, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to rename %s entry: %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", table, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s id %d: %w", table, id, ErrNotFound)
	}
	return nil
}
