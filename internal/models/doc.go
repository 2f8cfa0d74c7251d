// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package models defines the core data structures shared across the
// Filmoteka application: the persisted catalog record, registry entities,
// and the standard API response envelope.
//
// Models in this package are plain data carriers. Encoding between the
// human-readable form (tag names, dimension scores) and the compact
// persisted form (delimited id strings) lives in internal/catalog, and
// persistence itself lives in internal/database.
package models
