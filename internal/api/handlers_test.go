// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/filmoteka/filmoteka/internal/catalog"
	"github.com/filmoteka/filmoteka/internal/config"
	"github.com/filmoteka/filmoteka/internal/database"
	"github.com/filmoteka/filmoteka/internal/models"
)

// fakeCatalog implements CatalogService with canned data.
type fakeCatalog struct {
	movies map[string]*models.MovieView
	err    error

	lastInput catalog.MovieInput
	deleted   []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{movies: make(map[string]*models.MovieView)}
}

func (f *fakeCatalog) Create(_ context.Context, in catalog.MovieInput) (*models.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastInput = in
	if _, ok := f.movies[in.Title]; ok {
		return nil, database.ErrConflict
	}
	f.movies[in.Title] = &models.MovieView{Title: in.Title, Review: in.Review}
	return &models.Movie{Title: in.Title, Review: in.Review, AddedDate: time.Now()}, nil
}

func (f *fakeCatalog) Update(_ context.Context, title string, in catalog.MovieInput) (*models.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.movies[title]; !ok {
		return nil, database.ErrNotFound
	}
	f.lastInput = in
	return &models.Movie{Title: title, Review: in.Review}, nil
}

func (f *fakeCatalog) Delete(_ context.Context, title string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.movies[title]; !ok {
		return database.ErrNotFound
	}
	delete(f.movies, title)
	f.deleted = append(f.deleted, title)
	return nil
}

func (f *fakeCatalog) Get(_ context.Context, title string) (*models.MovieView, error) {
	if f.err != nil {
		return nil, f.err
	}
	view, ok := f.movies[title]
	if !ok {
		return nil, database.ErrNotFound
	}
	return view, nil
}

func (f *fakeCatalog) Search(_ context.Context, term string) ([]models.MovieView, error) {
	if f.err != nil {
		return nil, f.err
	}
	var views []models.MovieView
	for _, v := range f.movies {
		views = append(views, *v)
	}
	return views, nil
}

func (f *fakeCatalog) CheckDuplicates(_ context.Context, candidates []string) (models.DuplicateCheckResult, error) {
	if f.err != nil {
		return models.DuplicateCheckResult{}, f.err
	}
	result := models.DuplicateCheckResult{Duplicates: []string{}, Matches: map[string]string{}}
	for _, c := range candidates {
		if _, ok := f.movies[c]; ok {
			result.Duplicates = append(result.Duplicates, c)
			result.Matches[c] = c
		}
	}
	return result, nil
}

// fakeRegistry implements RegistryStore in memory.
type fakeRegistry struct {
	tags    []models.NamedEntity
	dims    []models.NamedEntity
	pingErr error
}

func (f *fakeRegistry) ListTags(context.Context) ([]models.NamedEntity, error) {
	return f.tags, nil
}

func (f *fakeRegistry) AddTag(_ context.Context, name string) (*models.NamedEntity, error) {
	for _, t := range f.tags {
		if t.Name == name {
			return nil, database.ErrConflict
		}
	}
	entity := models.NamedEntity{ID: len(f.tags) + 1, Name: name}
	f.tags = append(f.tags, entity)
	return &entity, nil
}

func (f *fakeRegistry) RenameTag(_ context.Context, id int, name string) error {
	for i, t := range f.tags {
		if t.ID == id {
			f.tags[i].Name = name
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeRegistry) ListDimensions(context.Context) ([]models.NamedEntity, error) {
	return f.dims, nil
}

func (f *fakeRegistry) AddDimension(_ context.Context, name string) (*models.NamedEntity, error) {
	entity := models.NamedEntity{ID: len(f.dims) + 1, Name: name}
	f.dims = append(f.dims, entity)
	return &entity, nil
}

func (f *fakeRegistry) RenameDimension(_ context.Context, id int, name string) error {
	for i, d := range f.dims {
		if d.ID == id {
			f.dims[i].Name = name
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeRegistry) Ping(context.Context) error {
	return f.pingErr
}

// fakeIngestor implements ImageIngestor.
type fakeIngestor struct {
	filename string
	err      error
	raw      []byte
}

func (f *fakeIngestor) Ingest(_ context.Context, raw []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.raw = raw
	return f.filename, nil
}

// fakePaths implements ImagePathResolver over a temp dir.
type fakePaths struct {
	dir string
}

func (f *fakePaths) Path(filename string) string {
	return filepath.Join(f.dir, filepath.Base(filename))
}

type testEnv struct {
	catalog  *fakeCatalog
	registry *fakeRegistry
	ingestor *fakeIngestor
	paths    *fakePaths
	server   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.API.DefaultPageSize = 20
	cfg.API.MaxPageSize = 100
	cfg.Security.CORSOrigins = []string{"*"}
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitWindow = time.Minute
	cfg.Images.MaxUploadBytes = 8 << 20

	env := &testEnv{
		catalog:  newFakeCatalog(),
		registry: &fakeRegistry{},
		ingestor: &fakeIngestor{filename: "1600000000_0a1b2c3d.webp"},
		paths:    &fakePaths{dir: t.TempDir()},
	}
	handler := NewHandler(env.catalog, env.registry, env.ingestor, env.paths, cfg)
	env.server = NewRouter(handler).Setup()
	return env
}

// doJSON performs a request with a JSON body and decodes the envelope.
func (env *testEnv) doJSON(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	env.server.ServeHTTP(rec, req)

	var envelope models.APIResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal envelope from %q: %v", rec.Body.String(), err)
		}
	}
	return rec, &envelope
}
