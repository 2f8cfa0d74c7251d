// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package catalog

import (
	"github.com/filmoteka/filmoteka/internal/models"
)

// Registry is a read-only snapshot of one name registry (tags or rating
// dimensions) taken at the start of a logical operation. The source of
// truth lives in storage; a snapshot stays consistent for the duration of
// one encode or decode call regardless of concurrent renames.
//
// The zero value is not usable; construct with NewRegistry.
type Registry struct {
	entities []models.NamedEntity
	byName   map[string]int
	byID     map[int]string
}

// NewRegistry builds a snapshot from registry rows in storage order.
// Duplicate names or ids are not expected (storage enforces uniqueness);
// if present, the last row wins.
func NewRegistry(entities []models.NamedEntity) *Registry {
	r := &Registry{
		entities: entities,
		byName:   make(map[string]int, len(entities)),
		byID:     make(map[int]string, len(entities)),
	}
	for _, e := range entities {
		r.byName[e.Name] = e.ID
		r.byID[e.ID] = e.Name
	}
	return r
}

// IDByName returns the id for a display name, if registered.
func (r *Registry) IDByName(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// NameByID returns the display name for an id, if registered.
func (r *Registry) NameByID(id int) (string, bool) {
	name, ok := r.byID[id]
	return name, ok
}

// Entities returns the snapshot rows in storage order. Callers must not
// mutate the returned slice.
func (r *Registry) Entities() []models.NamedEntity {
	return r.entities
}

// Len returns the number of entities in the snapshot.
func (r *Registry) Len() int {
	return len(r.entities)
}
