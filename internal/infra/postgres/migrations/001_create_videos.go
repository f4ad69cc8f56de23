package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createVideos creates the uploaders and videos tables with their indexes.
func createVideos() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_videos",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS uploaders (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					username VARCHAR(100) NOT NULL UNIQUE,
					avatar VARCHAR(500),
					email VARCHAR(255),
					password_hash VARCHAR(255),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS videos (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					source_id VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,

					title VARCHAR(500) NOT NULL,
					description TEXT,
					tags TEXT[],
					genres TEXT[] NOT NULL DEFAULT '{}',
					director VARCHAR(200),
					language VARCHAR(10),
					release_year INTEGER DEFAULT 0,

					-- Metrics
					rating DECIMAL(3,1) DEFAULT 0 CHECK (rating >= 0 AND rating <= 10),
					views BIGINT DEFAULT 0 CHECK (views >= 0),

					-- Visibility
					status VARCHAR(20) NOT NULL DEFAULT 'pending',
					is_public BOOLEAN DEFAULT FALSE,

					uploaded_by UUID REFERENCES uploaders(id),

					-- Timestamps
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for ingest upsert
					CONSTRAINT uq_source_external UNIQUE (source_id, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_videos_status ON videos(status);",
				"CREATE INDEX IF NOT EXISTS idx_videos_views ON videos(views DESC);",
				"CREATE INDEX IF NOT EXISTS idx_videos_rating ON videos(rating DESC);",
				"CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_videos_uploaded_by ON videos(uploaded_by);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec("DROP TABLE IF EXISTS videos;").Error; err != nil {
				return err
			}

			return tx.Exec("DROP TABLE IF EXISTS uploaders;").Error
		},
	}
}
