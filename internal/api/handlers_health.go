// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"net/http"
	"time"
)

// HealthLive is the liveness probe. It answers as long as the process
// can serve HTTP at all.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady is the readiness probe. It fails when the database does
// not answer a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.registry.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_ERROR", "Database not reachable", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, start)
}

// Health reports overall service health with component detail.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	overall := "healthy"
	dbStatus := "up"
	status := http.StatusOK
	if err := h.registry.Ping(r.Context()); err != nil {
		overall = "degraded"
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	respondSuccess(w, status, map[string]interface{}{
		"status": overall,
		"components": map[string]string{
			"database": dbStatus,
		},
	}, start)
}
