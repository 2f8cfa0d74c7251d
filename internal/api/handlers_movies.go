// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filmoteka/filmoteka/internal/catalog"
)

// movieRequest is the JSON body of create and update calls. Ratings
// arrive as an ordered list so the persisted encoding is deterministic.
type movieRequest struct {
	Title       string           `json:"title" validate:"required,max=512"`
	Recommended bool             `json:"recommended"`
	Review      string           `json:"review" validate:"max=65536"`
	Tags        []string         `json:"tags" validate:"max=256,dive,max=256"`
	Ratings     []catalog.Rating `json:"ratings" validate:"max=256"`
	Images      []string         `json:"images" validate:"max=64,dive,storedimage"`
}

// updateMovieRequest is movieRequest without the title, which is fixed
// by the URL and immutable.
type updateMovieRequest struct {
	Recommended bool             `json:"recommended"`
	Review      string           `json:"review" validate:"max=65536"`
	Tags        []string         `json:"tags" validate:"max=256,dive,max=256"`
	Ratings     []catalog.Rating `json:"ratings" validate:"max=256"`
	Images      []string         `json:"images" validate:"max=64,dive,storedimage"`
}

// duplicateCheckRequest carries candidate titles for duplicate checking.
type duplicateCheckRequest struct {
	Titles []string `json:"titles" validate:"required,min=1,max=1024,dive,max=512"`
}

// MoviesList handles GET /api/v1/movies. The optional q parameter
// filters by title or review substring; limit and offset page through
// the newest-first result.
func (h *Handler) MoviesList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	term := r.URL.Query().Get("q")
	limit := getIntParam(r, "limit", h.cfg.API.DefaultPageSize)
	offset := getIntParam(r, "offset", 0)
	if limit < 1 || limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	views, err := h.svc.Search(r.Context(), term)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	total := len(views)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"movies": views[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}, start)
}

// MovieGet handles GET /api/v1/movies/{title}.
func (h *Handler) MovieGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	title, ok := movieTitleParam(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Get(r.Context(), title)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, view, start)
}

// MovieCreate handles POST /api/v1/movies.
func (h *Handler) MovieCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req movieRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	movie, err := h.svc.Create(r.Context(), catalog.MovieInput{
		Title:       req.Title,
		Recommended: req.Recommended,
		Review:      req.Review,
		TagNames:    req.Tags,
		Ratings:     req.Ratings,
		Images:      req.Images,
	})
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, movie, start)
}

// MovieUpdate handles PUT /api/v1/movies/{title}. The body replaces
// every mutable field in full.
func (h *Handler) MovieUpdate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	title, ok := movieTitleParam(w, r)
	if !ok {
		return
	}

	var req updateMovieRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	movie, err := h.svc.Update(r.Context(), title, catalog.MovieInput{
		Recommended: req.Recommended,
		Review:      req.Review,
		TagNames:    req.Tags,
		Ratings:     req.Ratings,
		Images:      req.Images,
	})
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, movie, start)
}

// MovieDelete handles DELETE /api/v1/movies/{title}.
func (h *Handler) MovieDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	title, ok := movieTitleParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), title); err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"deleted": title}, start)
}

// MoviesDuplicates handles POST /api/v1/movies/duplicates. It flags
// which of the submitted titles already exist in the catalog, exactly
// or fuzzily.
func (h *Handler) MoviesDuplicates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req duplicateCheckRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	result, err := h.svc.CheckDuplicates(r.Context(), req.Titles)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, result, start)
}

// movieTitleParam extracts and decodes the {title} URL parameter.
// Titles routinely contain characters that arrive percent-encoded.
func movieTitleParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "title")
	title, err := url.PathUnescape(raw)
	if err != nil {
		title = raw
	}
	if title == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Title is required", nil)
		return "", false
	}
	return title, true
}
