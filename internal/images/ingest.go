// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package images

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/filmoteka/filmoteka/internal/logging"
	"github.com/filmoteka/filmoteka/internal/metrics"
)

const (
	// DefaultTargetHeight is the fixed output height in pixels.
	DefaultTargetHeight = 720

	// DefaultQuality is the WebP encode quality on a 0-100 scale.
	DefaultQuality = 85

	// storedExtension is the extension of every re-encoded image.
	storedExtension = "webp"
)

// ErrUnsupportedFormat is returned when an upload cannot be decoded as an
// image, or when its source filename carries a disallowed extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// allowedExtensions lists accepted upload extensions, lower-cased.
// The check applies to the source filename only; output is always WebP.
var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// storedNamePattern matches filenames generated by Ingest. Used to keep
// caller-supplied names out of storage paths and to guard the sweeper
// against deleting foreign files.
var storedNamePattern = regexp.MustCompile(`^\d+_[0-9a-f]{8}\.webp$`)

// ValidFilename reports whether an upload's source filename contains a
// dot and a lower-cased extension from the allowed set.
func ValidFilename(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	_, ok := allowedExtensions[ext]
	return ok
}

// IsStoredName reports whether filename matches the generated stored
// image name pattern.
func IsStoredName(filename string) bool {
	return storedNamePattern.MatchString(filename)
}

// Ingestor validates, resizes, re-encodes, and durably stores uploaded
// images, and reconciles stored assets when a record's image list
// changes. Safe for concurrent use; each call works on its own buffers.
type Ingestor struct {
	store        Store
	targetHeight int
	quality      float32

	// sem bounds concurrent resize/encode work, which is CPU-bound.
	// nil means unbounded.
	sem chan struct{}
}

// NewIngestor creates an Ingestor over the given store. targetHeight and
// quality fall back to the defaults when zero. maxConcurrent bounds
// simultaneous ingestions; zero means unbounded.
func NewIngestor(store Store, targetHeight int, quality float32, maxConcurrent int) *Ingestor {
	if targetHeight <= 0 {
		targetHeight = DefaultTargetHeight
	}
	if quality <= 0 {
		quality = DefaultQuality
	}

	var sem chan struct{}
	if maxConcurrent > 0 {
		sem = make(chan struct{}, maxConcurrent)
	}

	return &Ingestor{
		store:        store,
		targetHeight: targetHeight,
		quality:      quality,
		sem:          sem,
	}
}

// Ingest decodes the raw upload, resizes it to the fixed target height
// with width = round(w × target / h), re-encodes it as lossy WebP, and
// persists it under a generated filename, which is returned.
//
// A decode failure surfaces ErrUnsupportedFormat. A write failure
// surfaces the wrapped storage error; no partial cleanup is needed since
// the write target is a new file. The generated name is collision-
// resistant, not collision-free: a collision silently overwrites.
func (ing *Ingestor) Ingest(ctx context.Context, raw []byte) (string, error) {
	if ing.sem != nil {
		select {
		case ing.sem <- struct{}{}:
			defer func() { <-ing.sem }()
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	start := time.Now()

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		metrics.RecordIngest(time.Since(start), 0, "unsupported_format")
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	bounds := img.Bounds()
	width := int(math.Round(float64(bounds.Dx()) * float64(ing.targetHeight) / float64(bounds.Dy())))
	resized := imaging.Resize(img, width, ing.targetHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: ing.quality}); err != nil {
		metrics.RecordIngest(time.Since(start), 0, "io")
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	filename := generateFilename()
	if err := ing.store.Write(filename, buf.Bytes()); err != nil {
		metrics.RecordIngest(time.Since(start), 0, "io")
		return "", err
	}

	metrics.RecordIngest(time.Since(start), buf.Len(), "")
	logging.Ctx(ctx).Debug().
		Str("filename", filename).
		Int("width", width).
		Int("height", ing.targetHeight).
		Int("bytes", buf.Len()).
		Msg("Image ingested")

	return filename, nil
}

// Reconcile deletes stored images referenced by the original list but
// absent from the updated one. Deletions are best-effort: a missing file
// counts as already deleted and a failure is logged and swallowed, never
// aborting the surrounding update. Callers must persist the record update
// before calling Reconcile so a crash cannot drop a still-referenced
// image. Returns the number of filenames processed.
func (ing *Ingestor) Reconcile(ctx context.Context, original, updated []string) int {
	keep := make(map[string]struct{}, len(updated))
	for _, f := range updated {
		keep[f] = struct{}{}
	}

	removed := 0
	for _, f := range original {
		if _, ok := keep[f]; ok {
			continue
		}
		if err := ing.store.Delete(f); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("filename", f).Msg("Failed to delete orphaned image")
			continue
		}
		metrics.ImagesDeleted.WithLabelValues("reconcile").Inc()
		removed++
	}

	if removed > 0 {
		logging.Ctx(ctx).Info().Int("removed", removed).Msg("Reconciled orphaned images")
	}
	return removed
}

// generateFilename produces "{unix_seconds}_{8_hex}.webp". The random
// suffix comes from crypto/rand; on the (never expected) failure path it
// falls back to the low bits of the monotonic clock.
func generateFilename() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		now := time.Now().UnixNano()
		for i := range suffix {
			suffix[i] = byte(now >> (8 * i))
		}
	}
	return fmt.Sprintf("%d_%s.%s", time.Now().Unix(), hex.EncodeToString(suffix), storedExtension)
}
