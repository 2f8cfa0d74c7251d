// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

// Package config loads and validates service configuration from three
// layered sources: built-in defaults, an optional YAML file, and
// environment variables, with later layers overriding earlier ones.
//
// The environment surface is a fixed allowlist (see envTransformFunc);
// unknown variables are ignored rather than mapped heuristically.
package config
