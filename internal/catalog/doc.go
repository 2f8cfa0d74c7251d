// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package catalog implements the encoding and normalization layer of
// Filmoteka: the conversion between human-readable tag and rating
// dimension names and the compact persisted id-based string
// representation, duplicate detection over catalog titles, and the
// assembly of catalog records on the write and read paths.
//
// # Persisted string formats
//
// The formats below are a compatibility contract and must be reproduced
// bit-exact:
//
//   - Tag id list: comma-joined decimal integers, e.g. "3,7,12"
//   - Rating pair list: comma-joined "id:score" pairs, e.g. "1:5,2:3"
//   - Image filename list: comma-joined filenames
//
// # Error policy
//
// Encode and decode never fail. A name that does not resolve against the
// registry is silently omitted on encode; an id that no longer resolves
// decodes to an empty label with its position preserved; a malformed
// rating pair is discarded. This keeps display robust against stale
// references, which is deliberate: a deleted tag degrades cosmetically
// instead of breaking reads.
package catalog
