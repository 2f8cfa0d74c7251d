// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package models

import "time"

// NamedEntity is a registry row with a stable numeric id and a unique
// display name. Two registries share this shape: tags and rating
// dimensions. Ids are assigned on creation and never reused; names may
// change via explicit rename.
type NamedEntity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is the persisted catalog record, keyed by title.
//
// Tags, Ratings, and Images hold the compact persisted representation
// (comma-delimited id lists, "id:score" pairs, and filename lists
// respectively). The string formats are a compatibility contract; use
// internal/catalog to convert to and from the display form.
//
// Title and AddedDate are immutable once the record is created. An update
// rewrites every other field in full.
type Movie struct {
	Title       string    `json:"title"`
	Recommended bool      `json:"recommended"`
	Review      string    `json:"review"`
	Tags        string    `json:"tags"`
	Ratings     string    `json:"ratings"`
	Images      string    `json:"images"`
	AddedDate   time.Time `json:"added_date"`
}

// MovieView is the display-ready projection of a Movie: tag ids resolved
// to names, rating pairs decoded into a dimension-name to score map, and
// the image list split into individual filenames.
//
// TagNames preserves the order and duplicates of the persisted id list;
// an id whose tag was deleted after encoding appears as an empty string
// rather than being dropped, so positions stay aligned.
type MovieView struct {
	Title              string         `json:"title"`
	Recommended        bool           `json:"recommended"`
	Review             string         `json:"review"`
	TagNames           []string       `json:"tag_names"`
	Ratings            map[string]int `json:"ratings"`
	Images             []string       `json:"images"`
	AddedDate          time.Time      `json:"added_date"`
	FormattedAddedDate string         `json:"formatted_added_date"`
}

// DuplicateMatch records one candidate title flagged as a duplicate and
// the existing catalog title it matched. An exact match points at itself.
type DuplicateMatch struct {
	Candidate string `json:"candidate"`
	MatchedTo string `json:"matched_to"`
}

// DuplicateCheckResult is the outcome of a batch duplicate check.
// Duplicates preserves candidate input order.
type DuplicateCheckResult struct {
	Duplicates []string          `json:"duplicates"`
	Matches    map[string]string `json:"matches"`
}
