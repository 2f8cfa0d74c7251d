// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package catalog

import (
	"strconv"
	"strings"
)

// delimiter joins entries in every persisted list format.
const delimiter = ","

// ratingSeparator splits a rating pair into dimension id and score.
const ratingSeparator = ":"

// Rating is one dimension-name to score pair on the encode path.
// An ordered slice stands in for the conceptual name→score mapping so
// the persisted pair order is deterministic.
type Rating struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// EncodeTags resolves tag names against the registry snapshot and returns
// the comma-joined id list. Names are trimmed before lookup; a name that
// does not resolve is silently omitted. Input order is preserved and
// duplicates are not suppressed. Empty input yields an empty string.
func EncodeTags(names []string, reg *Registry) string {
	if len(names) == 0 {
		return ""
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, ok := reg.IDByName(name); ok {
			ids = append(ids, strconv.Itoa(id))
		}
	}
	return strings.Join(ids, delimiter)
}

// DecodeTags splits a persisted id list and resolves each id to its
// display name. An id that does not resolve (deleted tag, or a corrupted
// entry that is not an integer) maps to an empty label with its position
// preserved, so the caller sees the blank rather than a silently shorter
// list. Empty input yields an empty slice.
func DecodeTags(encoded string, reg *Registry) []string {
	if encoded == "" {
		return []string{}
	}

	parts := strings.Split(encoded, delimiter)
	names := make([]string, len(parts))
	for i, part := range parts {
		id, err := strconv.Atoi(part)
		if err != nil {
			continue // position i stays blank
		}
		if name, ok := reg.NameByID(id); ok {
			names[i] = name
		}
	}
	return names
}

// EncodeRatings resolves each dimension name to its id and serializes the
// pairs as comma-joined "id:score". Resolution follows EncodeTags exactly:
// names are trimmed, unresolvable names are dropped, input order is
// preserved. Empty input yields an empty string.
func EncodeRatings(ratings []Rating, reg *Registry) string {
	if len(ratings) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(ratings))
	for _, r := range ratings {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		if id, ok := reg.IDByName(name); ok {
			pairs = append(pairs, strconv.Itoa(id)+ratingSeparator+strconv.Itoa(r.Score))
		}
	}
	return strings.Join(pairs, delimiter)
}

// DecodeRatings parses a persisted pair list into a dimension-name to
// score map. A pair is discarded when it does not contain exactly one
// separator, when its left side is not a known dimension id, or when its
// right side is not an integer; the overall decode still succeeds with
// the remaining pairs. When the same dimension id appears twice, the
// later pair overwrites the earlier one. Empty input yields an empty map.
func DecodeRatings(encoded string, reg *Registry) map[string]int {
	result := make(map[string]int)
	if encoded == "" {
		return result
	}

	for _, pair := range strings.Split(encoded, delimiter) {
		fields := strings.Split(pair, ratingSeparator)
		if len(fields) != 2 {
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		name, ok := reg.NameByID(id)
		if !ok {
			continue
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		result[name] = score
	}
	return result
}

// EncodeImageList joins stored image filenames into the persisted list
// format. Empty entries are dropped.
func EncodeImageList(filenames []string) string {
	kept := make([]string, 0, len(filenames))
	for _, f := range filenames {
		f = strings.TrimSpace(f)
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, delimiter)
}

// DecodeImageList splits a persisted image filename list. Empty input
// yields an empty slice.
func DecodeImageList(encoded string) []string {
	if encoded == "" {
		return []string{}
	}

	parts := strings.Split(encoded, delimiter)
	filenames := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			filenames = append(filenames, part)
		}
	}
	return filenames
}
