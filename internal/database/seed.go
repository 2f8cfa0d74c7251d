// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package database

import (
	"fmt"

	"github.com/filmoteka/filmoteka/internal/logging"
)

// defaultTags is the preset tag vocabulary inserted on first run.
var defaultTags = []string{
	"花容月貌", "其貌不扬", "婀娜多姿", "丑态百出",
	"肤如凝脂", "肌无完肤", "演技投入", "形如死鱼",
	"开除摄像", "蒙头盖面", "马赛克",
}

// defaultDimensions is the preset rating dimension set inserted on
// first run.
var defaultDimensions = []string{
	"颜值", "身材", "皮肤", "激情", "摄影",
}

// seedRegistries inserts the preset tags and rating dimensions. Rows
// already present are left untouched, so re-running on an existing
// database is a no-op.
func (db *DB) seedRegistries() error {
	ctx, cancel := schemaContext()
	defer cancel()

	seeded := 0
	for _, name := range defaultTags {
		result, err := db.conn.ExecContext(ctx,
			`INSERT INTO tags (name) VALUES (?) ON CONFLICT DO NOTHING`, name)
		if err != nil {
			return fmt.Errorf("failed to seed tag %q: %w", name, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			seeded += int(n)
		}
	}

	for _, name := range defaultDimensions {
		result, err := db.conn.ExecContext(ctx,
			`INSERT INTO rating_dimensions (name) VALUES (?) ON CONFLICT DO NOTHING`, name)
		if err != nil {
			return fmt.Errorf("failed to seed rating dimension %q: %w", name, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			seeded += int(n)
		}
	}

	if seeded > 0 {
		logging.Info().Int("rows", seeded).Msg("Seeded registry defaults")
	}
	return nil
}
