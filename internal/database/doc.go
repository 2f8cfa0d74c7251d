// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package database provides DuckDB-backed persistence for the Filmoteka
// catalog: the movies table and the two name registries (tags and rating
// dimensions).
//
// The catalog columns movies.tags, movies.ratings, and movies.images
// store the compact delimited string formats defined by internal/catalog.
// This package treats them as opaque strings; all encoding and decoding
// happens at the catalog boundary.
//
// Uniqueness of movie titles and registry names is enforced here with
// primary key and UNIQUE constraints; violations surface as ErrConflict
// so handlers can answer with a distinct "already exists" condition.
package database
