// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/filmoteka/filmoteka/internal/catalog"
	"github.com/filmoteka/filmoteka/internal/config"
	"github.com/filmoteka/filmoteka/internal/database"
	"github.com/filmoteka/filmoteka/internal/images"
	"github.com/filmoteka/filmoteka/internal/models"
)

// CatalogService is the catalog surface the handlers call. Implemented
// by *catalog.Service; tests substitute fakes.
type CatalogService interface {
	Create(ctx context.Context, in catalog.MovieInput) (*models.Movie, error)
	Update(ctx context.Context, title string, in catalog.MovieInput) (*models.Movie, error)
	Delete(ctx context.Context, title string) error
	Get(ctx context.Context, title string) (*models.MovieView, error)
	Search(ctx context.Context, term string) ([]models.MovieView, error)
	CheckDuplicates(ctx context.Context, candidates []string) (models.DuplicateCheckResult, error)
}

// RegistryStore is the registry management surface. Implemented by
// *database.DB.
type RegistryStore interface {
	ListTags(ctx context.Context) ([]models.NamedEntity, error)
	AddTag(ctx context.Context, name string) (*models.NamedEntity, error)
	RenameTag(ctx context.Context, id int, name string) error
	ListDimensions(ctx context.Context) ([]models.NamedEntity, error)
	AddDimension(ctx context.Context, name string) (*models.NamedEntity, error)
	RenameDimension(ctx context.Context, id int, name string) error
	Ping(ctx context.Context) error
}

// ImageIngestor converts an uploaded image into a stored asset and
// returns its generated filename. Implemented by *images.Ingestor.
type ImageIngestor interface {
	Ingest(ctx context.Context, raw []byte) (string, error)
}

// ImagePathResolver maps a stored filename to its on-disk path for
// static delivery. Implemented by *images.DiskStore.
type ImagePathResolver interface {
	Path(filename string) string
}

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	svc      CatalogService
	registry RegistryStore
	ingestor ImageIngestor
	imgPaths ImagePathResolver
	cfg      *config.Config
}

// NewHandler creates a handler set backed by the given services.
func NewHandler(svc CatalogService, registry RegistryStore, ingestor ImageIngestor, imgPaths ImagePathResolver, cfg *config.Config) *Handler {
	return &Handler{
		svc:      svc,
		registry: registry,
		ingestor: ingestor,
		imgPaths: imgPaths,
		cfg:      cfg,
	}
}

// respondStorageError maps storage and ingest errors onto the API's
// error codes.
func respondStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Record not found", nil)
	case errors.Is(err, database.ErrConflict):
		respondError(w, http.StatusConflict, "CONFLICT", "Record already exists", nil)
	case errors.Is(err, images.ErrUnsupportedFormat):
		respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "Unsupported image format", nil)
	default:
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Storage operation failed", err)
	}
}
