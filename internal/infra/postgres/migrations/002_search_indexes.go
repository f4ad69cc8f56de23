package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// addSearchIndexes adds the indexes the discovery paths lean on:
//
//   - A GIN index on genres so the array-overlap tests (genre filter,
//     recommendation seeds) stay index-backed.
//   - pg_trgm GIN indexes on title and description so the ILIKE substring
//     search avoids sequential scans on larger catalogs.
//   - A partial composite index over the visibility gate, since every list
//     path conjoins status = 'approved' AND is_public.
//
// The trigram indexes need the pg_trgm extension; their creation is tolerated
// to fail on databases where the extension cannot be installed, in which case
// the substring search still works, just unindexed.
func addSearchIndexes() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_search_indexes",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_videos_genres ON videos USING GIN (genres);
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_videos_visible
				ON videos(created_at DESC) WHERE status = 'approved' AND is_public;
			`).Error; err != nil {
				return err
			}

			// Best-effort trigram indexes
			if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm;").Error; err == nil {
				trgm := []string{
					"CREATE INDEX IF NOT EXISTS idx_videos_title_trgm ON videos USING GIN (title gin_trgm_ops);",
					"CREATE INDEX IF NOT EXISTS idx_videos_description_trgm ON videos USING GIN (description gin_trgm_ops);",
				}
				for _, idx := range trgm {
					_ = tx.Exec(idx).Error
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			drops := []string{
				"DROP INDEX IF EXISTS idx_videos_genres;",
				"DROP INDEX IF EXISTS idx_videos_visible;",
				"DROP INDEX IF EXISTS idx_videos_title_trgm;",
				"DROP INDEX IF EXISTS idx_videos_description_trgm;",
			}
			for _, d := range drops {
				if err := tx.Exec(d).Error; err != nil {
					return err
				}
			}

			return nil
		},
	}
}
