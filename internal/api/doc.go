// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package api provides the HTTP surface of the service: catalog CRUD
// and search, duplicate checking, registry management for tags and
// rating dimensions, image upload and delivery, health probes, and the
// Prometheus scrape endpoint.
//
// Routing uses chi. Every response is wrapped in the models.APIResponse
// envelope and encoded with goccy/go-json. Storage errors map onto a
// small set of error codes: ErrNotFound becomes NOT_FOUND (404),
// ErrConflict becomes CONFLICT (409), images.ErrUnsupportedFormat
// becomes UNSUPPORTED_FORMAT (415) and everything else is a 500.
package api
