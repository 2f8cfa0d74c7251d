// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/filmoteka/filmoteka/internal/images"
	"github.com/filmoteka/filmoteka/internal/logging"
	"github.com/filmoteka/filmoteka/internal/models"
)

// addedDateFormat renders AddedDate in the display projection.
const addedDateFormat = "2006-01-02 15:04:05"

// Store is the storage surface the catalog service needs. Implemented by
// *database.DB; tests substitute fakes.
type Store interface {
	ListTags(ctx context.Context) ([]models.NamedEntity, error)
	ListDimensions(ctx context.Context) ([]models.NamedEntity, error)

	InsertMovie(ctx context.Context, movie *models.Movie) error
	UpdateMovie(ctx context.Context, movie *models.Movie) error
	DeleteMovie(ctx context.Context, title string) error
	GetMovie(ctx context.Context, title string) (*models.Movie, error)
	SearchMovies(ctx context.Context, term string) ([]models.Movie, error)
	ListMovieTitles(ctx context.Context) ([]string, error)
}

// ImageReconciler applies the stored-image deletions implied by an image
// list change. Implemented by *images.Ingestor.
type ImageReconciler interface {
	Reconcile(ctx context.Context, original, updated []string) int
}

// MovieInput carries the raw, human-readable fields of a create or
// update: tag and dimension names instead of ids, and stored image
// filenames produced by prior upload calls.
type MovieInput struct {
	Title       string
	Recommended bool
	Review      string
	TagNames    []string
	Ratings     []Rating
	Images      []string
}

// Service assembles catalog records on the write path (encode names,
// join image lists, persist) and projects them for display on the read
// path (decode ids back to names). It owns the ordering invariant of
// non-transactional updates: the record is persisted before any stored
// image is deleted.
type Service struct {
	store   Store
	imgs    ImageReconciler
	matcher MatchStrategy
}

// NewService creates a catalog service. A nil matcher falls back to the
// default containment strategy.
func NewService(store Store, imgs ImageReconciler, matcher MatchStrategy) *Service {
	if matcher == nil {
		matcher = NewContainmentMatcher()
	}
	return &Service{store: store, imgs: imgs, matcher: matcher}
}

// Create encodes the input against fresh registry snapshots and inserts
// a new record. AddedDate is set here, once. A duplicate title surfaces
// as the storage layer's conflict error.
func (s *Service) Create(ctx context.Context, in MovieInput) (*models.Movie, error) {
	movie, err := s.assemble(ctx, in)
	if err != nil {
		return nil, err
	}
	movie.AddedDate = time.Now()

	if err := s.store.InsertMovie(ctx, movie); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("title", movie.Title).Msg("Catalog record created")
	return movie, nil
}

// Update rewrites every mutable field of an existing record, then
// reconciles stored images against the previous list. The record write
// happens strictly before reconcile: a crash in between leaks orphaned
// files (the sweeper's problem) but can never drop a still-referenced
// image.
func (s *Service) Update(ctx context.Context, title string, in MovieInput) (*models.Movie, error) {
	existing, err := s.store.GetMovie(ctx, title)
	if err != nil {
		return nil, err
	}

	in.Title = title
	movie, err := s.assemble(ctx, in)
	if err != nil {
		return nil, err
	}
	movie.AddedDate = existing.AddedDate

	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, err
	}

	s.imgs.Reconcile(ctx, DecodeImageList(existing.Images), DecodeImageList(movie.Images))

	logging.Ctx(ctx).Info().Str("title", title).Msg("Catalog record updated")
	return movie, nil
}

// Delete removes a record and then reconciles away every image it
// referenced. Same ordering as Update: record first, files second.
func (s *Service) Delete(ctx context.Context, title string) error {
	existing, err := s.store.GetMovie(ctx, title)
	if err != nil {
		return err
	}

	if err := s.store.DeleteMovie(ctx, title); err != nil {
		return err
	}

	s.imgs.Reconcile(ctx, DecodeImageList(existing.Images), nil)

	logging.Ctx(ctx).Info().Str("title", title).Msg("Catalog record deleted")
	return nil
}

// Search returns display projections of records matching the term,
// newest first, decoded against fresh registry snapshots.
func (s *Service) Search(ctx context.Context, term string) ([]models.MovieView, error) {
	tags, dims, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	movies, err := s.store.SearchMovies(ctx, term)
	if err != nil {
		return nil, err
	}

	views := make([]models.MovieView, len(movies))
	for i := range movies {
		views[i] = project(&movies[i], tags, dims)
	}
	return views, nil
}

// Get returns the display projection of a single record.
func (s *Service) Get(ctx context.Context, title string) (*models.MovieView, error) {
	tags, dims, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	movie, err := s.store.GetMovie(ctx, title)
	if err != nil {
		return nil, err
	}

	view := project(movie, tags, dims)
	return &view, nil
}

// CheckDuplicates flags which candidate titles duplicate existing
// catalog entries under the configured match strategy.
func (s *Service) CheckDuplicates(ctx context.Context, candidates []string) (models.DuplicateCheckResult, error) {
	titles, err := s.store.ListMovieTitles(ctx)
	if err != nil {
		return models.DuplicateCheckResult{}, fmt.Errorf("failed to list catalog titles: %w", err)
	}
	return s.matcher.Check(candidates, titles), nil
}

// assemble encodes raw input fields into a persistable record. Image
// filenames are filtered through the generated-name check: the catalog
// never trusts caller-supplied names as storage identifiers.
func (s *Service) assemble(ctx context.Context, in MovieInput) (*models.Movie, error) {
	tags, dims, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	stored := make([]string, 0, len(in.Images))
	for _, filename := range in.Images {
		if images.IsStoredName(filename) {
			stored = append(stored, filename)
		} else if filename != "" {
			logging.Ctx(ctx).Warn().Str("filename", filename).Msg("Dropping image with non-generated filename")
		}
	}

	return &models.Movie{
		Title:       in.Title,
		Recommended: in.Recommended,
		Review:      in.Review,
		Tags:        EncodeTags(in.TagNames, tags),
		Ratings:     EncodeRatings(in.Ratings, dims),
		Images:      EncodeImageList(stored),
	}, nil
}

// snapshots takes one registry snapshot per logical operation so lookups
// stay consistent even if a rename lands mid-call.
func (s *Service) snapshots(ctx context.Context) (tags, dims *Registry, err error) {
	tagRows, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to snapshot tag registry: %w", err)
	}
	dimRows, err := s.store.ListDimensions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to snapshot dimension registry: %w", err)
	}
	return NewRegistry(tagRows), NewRegistry(dimRows), nil
}

// project decodes one record into its display form.
func project(movie *models.Movie, tags, dims *Registry) models.MovieView {
	return models.MovieView{
		Title:              movie.Title,
		Recommended:        movie.Recommended,
		Review:             movie.Review,
		TagNames:           DecodeTags(movie.Tags, tags),
		Ratings:            DecodeRatings(movie.Ratings, dims),
		Images:             DecodeImageList(movie.Images),
		AddedDate:          movie.AddedDate,
		FormattedAddedDate: movie.AddedDate.Format(addedDateFormat),
	}
}
