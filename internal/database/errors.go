// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package database

import (
	"errors"
	"io"

	"github.com/filmoteka/filmoteka/internal/logging"
)

// ErrNotFound is returned when a movie title or registry id does not
// exist in storage.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a unique movie title or registry name
// already exists. Handlers translate this into a distinct
// "already exists" response rather than a generic failure.
var ErrConflict = errors.New("record already exists")

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not
// actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// closeRows closes a result set and logs any error.
func closeRows(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close result set")
	}
}
