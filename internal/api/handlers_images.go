// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filmoteka/filmoteka/internal/images"
	"github.com/filmoteka/filmoteka/internal/logging"
)

// ImageUpload handles POST /api/v1/images. The multipart field "image"
// carries the upload; the source filename gates the allowed extensions
// and the bytes must decode as an image. The response returns the
// generated stored filename to reference in a later record write.
func (h *Handler) ImageUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Images.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.Images.MaxUploadBytes); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Upload too large or malformed", err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing image field", err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to close upload")
		}
	}()

	if !images.ValidFilename(header.Filename) {
		respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT",
			"Only png, jpg and jpeg uploads are accepted", nil)
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "IO_ERROR", "Failed to read upload", err)
		return
	}

	filename, err := h.ingestor.Ingest(r.Context(), raw)
	if err != nil {
		if errors.Is(err, images.ErrUnsupportedFormat) {
			respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT",
				"Upload could not be decoded as an image", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "IO_ERROR", "Failed to store image", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("filename", filename).
		Str("source", sanitizeLogValue(header.Filename)).Msg("Image ingested")
	respondSuccess(w, http.StatusCreated, map[string]string{"filename": filename}, start)
}

// ImageServe handles GET /images/{filename}. Only names this service
// generated are served; anything else is treated as not found so the
// endpoint cannot be used to probe the filesystem.
func (h *Handler) ImageServe(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !images.IsStoredName(filename) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	http.ServeFile(w, r, h.imgPaths.Path(filename))
}
