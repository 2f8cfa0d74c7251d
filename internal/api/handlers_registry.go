// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// registryEntryRequest is the body of add and rename calls on both
// registries.
type registryEntryRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// TagsList handles GET /api/v1/tags.
func (h *Handler) TagsList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tags, err := h.registry.ListTags(r.Context())
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"tags": tags}, start)
}

// TagCreate handles POST /api/v1/tags.
func (h *Handler) TagCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeRegistryEntry(w, r)
	if !ok {
		return
	}

	entity, err := h.registry.AddTag(r.Context(), req.Name)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, entity, start)
}

// TagRename handles PUT /api/v1/tags/{id}. Catalog records reference
// tags by id, so a rename shows up everywhere immediately.
func (h *Handler) TagRename(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := registryIDParam(w, r)
	if !ok {
		return
	}
	req, ok := decodeRegistryEntry(w, r)
	if !ok {
		return
	}

	if err := h.registry.RenameTag(r.Context(), id, req.Name); err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "name": req.Name}, start)
}

// DimensionsList handles GET /api/v1/dimensions.
func (h *Handler) DimensionsList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dims, err := h.registry.ListDimensions(r.Context())
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"dimensions": dims}, start)
}

// DimensionCreate handles POST /api/v1/dimensions.
func (h *Handler) DimensionCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeRegistryEntry(w, r)
	if !ok {
		return
	}

	entity, err := h.registry.AddDimension(r.Context(), req.Name)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, entity, start)
}

// DimensionRename handles PUT /api/v1/dimensions/{id}.
func (h *Handler) DimensionRename(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := registryIDParam(w, r)
	if !ok {
		return
	}
	req, ok := decodeRegistryEntry(w, r)
	if !ok {
		return
	}

	if err := h.registry.RenameDimension(r.Context(), id, req.Name); err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "name": req.Name}, start)
}

func decodeRegistryEntry(w http.ResponseWriter, r *http.Request) (*registryEntryRequest, bool) {
	var req registryEntryRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return nil, false
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return nil, false
	}
	return &req, true
}

func registryIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id", nil)
		return 0, false
	}
	return id, true
}
