// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package middleware provides the HTTP middleware stack shared by all
// routes: request ID tracking for log correlation and Prometheus
// request instrumentation. CORS and rate limiting come from the
// go-chi/cors and go-chi/httprate packages and are wired directly in
// the router.
package middleware
