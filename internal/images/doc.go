// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package images implements the image asset pipeline: validation,
// uniform resizing, WebP re-encoding, durable storage, and garbage
// collection of orphaned assets.
//
// # Stored filename format
//
// Every stored image is named "{unix_seconds}_{8_hex_chars}.webp". The
// random suffix makes collisions overwhelmingly unlikely within a second
// but does not guarantee uniqueness; a collision silently overwrites.
// Filenames are generated exclusively here — caller-supplied names are
// never trusted as storage paths.
//
// # Resize contract
//
// Output height is fixed at 720 pixels; output width is
// round(inputWidth × 720 / inputHeight). Aspect ratio is preserved on
// width only, so extreme aspect ratios are not corrected further.
//
// # Failure modes
//
// Ingest surfaces ErrUnsupportedFormat when the upload cannot be decoded
// and wraps write failures for the caller. Reconcile and the sweeper
// swallow delete failures after logging them; a missing file is treated
// as already deleted.
package images
