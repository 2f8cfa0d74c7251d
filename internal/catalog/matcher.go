// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package catalog

import (
	"strings"

	"github.com/filmoteka/filmoteka/internal/models"
)

// fc2Prefix marks the title format "FC2-XXXXXXX" whose free-form variants
// carry only the numeric code. A title with this prefix is reduced to the
// substring after its last hyphen before the containment test.
const fc2Prefix = "fc2-"

// MatchStrategy decides which candidate titles duplicate existing catalog
// entries. It is deliberately pluggable: the default containment heuristic
// can be replaced by a stricter algorithm (edit distance, token
// normalization) without touching callers.
type MatchStrategy interface {
	// Check flags duplicates among candidates against the existing titles.
	// Duplicates preserves candidate input order; Matches maps each
	// duplicate to the existing title it matched (itself for exact hits).
	Check(candidates, existing []string) models.DuplicateCheckResult
}

// ContainmentMatcher is the default MatchStrategy: an exact case-sensitive
// title match wins first; otherwise both titles are lower-cased,
// FC2-prefixed titles are reduced to their numeric code, and substring
// containment in either direction counts as a match. The first existing
// title that passes, in registry order, is recorded and scanning stops
// for that candidate.
//
// This is a single-pass heuristic, not a similarity score.
type ContainmentMatcher struct{}

// NewContainmentMatcher returns the default duplicate match strategy.
func NewContainmentMatcher() *ContainmentMatcher {
	return &ContainmentMatcher{}
}

// Check implements MatchStrategy.
func (m *ContainmentMatcher) Check(candidates, existing []string) models.DuplicateCheckResult {
	result := models.DuplicateCheckResult{
		Duplicates: []string{},
		Matches:    make(map[string]string),
	}

	exact := make(map[string]struct{}, len(existing))
	for _, title := range existing {
		exact[title] = struct{}{}
	}

	for _, candidate := range candidates {
		if _, ok := exact[candidate]; ok {
			result.Duplicates = append(result.Duplicates, candidate)
			result.Matches[candidate] = candidate
			continue
		}

		normCandidate := normalizeTitle(candidate)
		for _, title := range existing {
			if containsEither(normCandidate, normalizeTitle(title)) {
				result.Duplicates = append(result.Duplicates, candidate)
				result.Matches[candidate] = title
				break
			}
		}
	}

	return result
}

// normalizeTitle lower-cases a title and, when it carries the FC2 marker
// prefix, keeps only the substring after the last hyphen.
func normalizeTitle(title string) string {
	lower := strings.ToLower(title)
	if strings.HasPrefix(lower, fc2Prefix) {
		if idx := strings.LastIndex(lower, "-"); idx >= 0 {
			lower = lower[idx+1:]
		}
	}
	return lower
}

// containsEither reports whether either normalized title is a substring
// of the other. Containment in one direction is sufficient.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
