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
	"strings"
	"time"

	"github.com/filmoteka/filmoteka/internal/catalog"
	"github.com/filmoteka/filmoteka/internal/metrics"
	"github.com/filmoteka/filmoteka/internal/models"
)

// InsertMovie persists a new movie record. An existing record with the
// same title surfaces as ErrConflict.
func (db *DB) InsertMovie(ctx context.Context, movie *models.Movie) error {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO movies (title, recommended, review, tags, ratings, images, added_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`,
		movie.Title, movie.Recommended, movie.Review,
		movie.Tags, movie.Ratings, movie.Images, movie.AddedDate)
	metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("movie %q: %w", movie.Title, ErrConflict)
	}
	return nil
}

// UpdateMovie rewrites every mutable field of an existing record. The
// title and added date are never changed here.
func (db *DB) UpdateMovie(ctx context.Context, movie *models.Movie) error {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx, `
		UPDATE movies
		SET recommended = ?, review = ?, tags = ?, ratings = ?, images = ?
		WHERE title = ?`,
		movie.Recommended, movie.Review, movie.Tags, movie.Ratings,
		movie.Images, movie.Title)
	metrics.RecordDBQuery("update", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("movie %q: %w", movie.Title, ErrNotFound)
	}
	return nil
}

// DeleteMovie removes a record by title.
func (db *DB) DeleteMovie(ctx context.Context, title string) error {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM movies WHERE title = ?`, title)
	metrics.RecordDBQuery("delete", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("movie %q: %w", title, ErrNotFound)
	}
	return nil
}

// GetMovie fetches a single record by exact title.
func (db *DB) GetMovie(ctx context.Context, title string) (*models.Movie, error) {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		SELECT title, recommended, review, tags, ratings, images, added_date
		FROM movies WHERE title = ?`, title)

	var movie models.Movie
	err := row.Scan(&movie.Title, &movie.Recommended, &movie.Review,
		&movie.Tags, &movie.Ratings, &movie.Images, &movie.AddedDate)
	metrics.RecordDBQuery("get", "movies", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("movie %q: %w", title, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}
	return &movie, nil
}

// SearchMovies returns records whose title or review contains the term,
// case-insensitively, newest first. An empty term returns the whole
// catalog.
func (db *DB) SearchMovies(ctx context.Context, term string) ([]models.Movie, error) {
	pattern := "%" + escapeLike(term) + "%"
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT title, recommended, review, tags, ratings, images, added_date
		FROM movies
		WHERE lower(title) LIKE lower(?) ESCAPE '\'
		   OR lower(review) LIKE lower(?) ESCAPE '\'
		ORDER BY added_date DESC, title`,
		pattern, pattern)
	metrics.RecordDBQuery("search", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	defer closeRows(rows)

	movies := make([]models.Movie, 0, 32)
	for rows.Next() {
		var movie models.Movie
		if err := rows.Scan(&movie.Title, &movie.Recommended, &movie.Review,
			&movie.Tags, &movie.Ratings, &movie.Images, &movie.AddedDate); err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movie rows: %w", err)
	}
	return movies, nil
}

// ListMovieTitles returns every title in the catalog, for duplicate
// checking against a candidate.
func (db *DB) ListMovieTitles(ctx context.Context) ([]string, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT title FROM movies ORDER BY added_date DESC, title`)
	metrics.RecordDBQuery("list", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list movie titles: %w", err)
	}
	defer closeRows(rows)

	titles := make([]string, 0, 64)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate titles: %w", err)
	}
	return titles, nil
}

// ReferencedImages returns the set of stored image filenames referenced
// by any movie record. The orphan sweeper treats files outside this set
// as deletion candidates.
func (db *DB) ReferencedImages(ctx context.Context) (map[string]struct{}, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT images FROM movies WHERE images <> ''`)
	metrics.RecordDBQuery("list_images", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query referenced images: %w", err)
	}
	defer closeRows(rows)

	referenced := make(map[string]struct{})
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("failed to scan image list: %w", err)
		}
		for _, name := range catalog.DecodeImageList(encoded) {
			referenced[name] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate image lists: %w", err)
	}
	return referenced, nil
}

// escapeLike neutralizes LIKE wildcards in a user-supplied search term.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
