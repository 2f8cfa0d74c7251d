// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package metrics provides Prometheus instrumentation for Filmoteka.
//
// Metrics are exposed at the /metrics endpoint in Prometheus text format
// and cover the API surface, database queries, the image ingestion
// pipeline, and the orphan sweeper.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation", "table"},
	)

	// Image ingestion metrics
	ImageIngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_ingest_duration_seconds",
			Help:    "Duration of image decode, resize, and re-encode in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	ImageIngestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_ingest_errors_total",
			Help: "Total number of failed image ingestions",
		},
		[]string{"reason"}, // "unsupported_format", "io"
	)

	ImageIngestBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_ingest_stored_bytes",
			Help:    "Size of stored re-encoded images in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	ImagesDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "images_deleted_total",
			Help: "Total number of stored images deleted",
		},
		[]string{"source"}, // "reconcile", "sweeper"
	)

	// Orphan sweeper metrics
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orphan_sweep_duration_seconds",
			Help:    "Duration of orphaned image sweeps in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30, 60},
		},
	)

	SweepOrphansFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orphan_sweep_orphans_found_total",
			Help: "Total number of orphaned images found by the sweeper",
		},
	)

	SweepLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orphan_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful orphan sweep",
		},
	)
)

// RecordDBQuery records database query performance metrics.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records API endpoint performance metrics.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordIngest records a completed (or failed) image ingestion.
// reason is empty on success, "unsupported_format" or "io" on failure.
func RecordIngest(duration time.Duration, storedBytes int, reason string) {
	ImageIngestDuration.Observe(duration.Seconds())
	if reason != "" {
		ImageIngestErrors.WithLabelValues(reason).Inc()
		return
	}
	ImageIngestBytes.Observe(float64(storedBytes))
}

// RecordSweep records a completed orphan sweep.
func RecordSweep(duration time.Duration, orphans int) {
	SweepDuration.Observe(duration.Seconds())
	SweepOrphansFound.Add(float64(orphans))
	SweepLastSuccess.SetToCurrentTime()
}
