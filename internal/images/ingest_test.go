// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sort"
	"sync"
	"testing"

	"github.com/chai2010/webp"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu    sync.Mutex
	files map[string][]byte

	failWrite  bool
	failDelete bool
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (s *memStore) Write(filename string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return errors.New("write failed")
	}
	s.files[filename] = data
	return nil
}

func (s *memStore) Exists(filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[filename]
	return ok, nil
}

func (s *memStore) Delete(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete {
		return errors.New("delete failed")
	}
	// Missing files are not an error, mirroring DiskStore.
	delete(s.files, filename)
	return nil
}

func (s *memStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// testImage renders a solid image of the given dimensions.
func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestValidFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"cover.png", true},
		{"cover.jpg", true},
		{"cover.jpeg", true},
		{"COVER.PNG", true},
		{"cover.JPEG", true},
		{"cover.gif", false},
		{"cover.webp", false},
		{"noextension", false},
		{"", false},
		{".png", true},
		{"archive.tar.png", true},
	}

	for _, tt := range tests {
		if got := ValidFilename(tt.filename); got != tt.want {
			t.Errorf("ValidFilename(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestIngestResizesLandscape(t *testing.T) {
	store := newMemStore()
	ing := NewIngestor(store, 0, 0, 0)

	filename, err := ing.Ingest(context.Background(), encodePNG(t, testImage(1920, 1080)))
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	if !IsStoredName(filename) {
		t.Errorf("generated filename %q does not match the stored name pattern", filename)
	}

	stored, ok := store.files[filename]
	if !ok {
		t.Fatalf("expected %q in store", filename)
	}

	decoded, err := webp.Decode(bytes.NewReader(stored))
	if err != nil {
		t.Fatalf("stored image is not valid WebP: %v", err)
	}
	if w, h := decoded.Bounds().Dx(), decoded.Bounds().Dy(); w != 1280 || h != 720 {
		t.Errorf("stored dimensions = %dx%d, want 1280x720", w, h)
	}
}

func TestIngestResizesPortrait(t *testing.T) {
	store := newMemStore()
	ing := NewIngestor(store, 0, 0, 0)

	filename, err := ing.Ingest(context.Background(), encodeJPEG(t, testImage(720, 1280)))
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	decoded, err := webp.Decode(bytes.NewReader(store.files[filename]))
	if err != nil {
		t.Fatalf("stored image is not valid WebP: %v", err)
	}
	if w, h := decoded.Bounds().Dx(), decoded.Bounds().Dy(); w != 405 || h != 720 {
		t.Errorf("stored dimensions = %dx%d, want 405x720", w, h)
	}
}

func TestIngestRejectsUndecodableInput(t *testing.T) {
	ing := NewIngestor(newMemStore(), 0, 0, 0)

	_, err := ing.Ingest(context.Background(), []byte("this is not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestIngestSurfacesWriteFailure(t *testing.T) {
	store := newMemStore()
	store.failWrite = true
	ing := NewIngestor(store, 0, 0, 0)

	_, err := ing.Ingest(context.Background(), encodePNG(t, testImage(100, 100)))
	if err == nil {
		t.Fatal("expected error on write failure")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("write failure must not be reported as unsupported format, got %v", err)
	}
}

func TestIngestFilenamesDiffer(t *testing.T) {
	store := newMemStore()
	ing := NewIngestor(store, 0, 0, 0)
	raw := encodePNG(t, testImage(64, 64))

	// Two ingests within the same second should still differ thanks to
	// the random suffix. Probabilistic, not guaranteed.
	a, err := ing.Ingest(context.Background(), raw)
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	b, err := ing.Ingest(context.Background(), raw)
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if a == b {
		t.Errorf("two ingests produced the same filename %q", a)
	}
}

func TestReconcileDeletesOrphans(t *testing.T) {
	store := newMemStore()
	store.files["1600000000_aaaaaaaa.webp"] = []byte{1}
	store.files["1600000000_bbbbbbbb.webp"] = []byte{2}
	store.files["1600000000_cccccccc.webp"] = []byte{3}

	ing := NewIngestor(store, 0, 0, 0)

	original := []string{"1600000000_aaaaaaaa.webp", "1600000000_bbbbbbbb.webp", "1600000000_cccccccc.webp"}
	updated := []string{"1600000000_bbbbbbbb.webp"}

	removed := ing.Reconcile(context.Background(), original, updated)
	if removed != 2 {
		t.Errorf("Reconcile() removed %d, want 2", removed)
	}
	if _, ok := store.files["1600000000_bbbbbbbb.webp"]; !ok {
		t.Error("kept image was deleted")
	}
	if _, ok := store.files["1600000000_aaaaaaaa.webp"]; ok {
		t.Error("orphaned image survived reconcile")
	}

	// Second pass over the same sets: files already gone, still no error,
	// deletions counted again only for files actually present.
	removed = ing.Reconcile(context.Background(), original, updated)
	if removed != 2 {
		// memStore treats missing deletes as success, mirroring DiskStore.
		t.Errorf("idempotent Reconcile() removed %d, want 2", removed)
	}
}

func TestReconcileSwallowsDeleteFailures(t *testing.T) {
	store := newMemStore()
	store.files["1600000000_aaaaaaaa.webp"] = []byte{1}
	store.failDelete = true

	ing := NewIngestor(store, 0, 0, 0)
	removed := ing.Reconcile(context.Background(), []string{"1600000000_aaaaaaaa.webp"}, nil)
	if removed != 0 {
		t.Errorf("Reconcile() removed %d despite delete failures, want 0", removed)
	}
}

func TestIngestBoundedConcurrency(t *testing.T) {
	store := newMemStore()
	ing := NewIngestor(store, 0, 0, 2)
	raw := encodePNG(t, testImage(320, 240))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ing.Ingest(context.Background(), raw); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Ingest() error: %v", err)
	}
	if got, _ := store.List(); len(got) != 8 {
		t.Errorf("expected 8 stored images, got %d", len(got))
	}
}
