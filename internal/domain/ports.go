package domain

import (
	"context"
	"time"
)

// VideoRepository defines the persistence operations the discovery engine
// needs. Implementations: internal/infra/postgres/repository.go
type VideoRepository interface {
	// Search executes one faceted plan: filtered count plus a filtered,
	// sorted, paginated page, both from the same predicate set, with the
	// uploader projection resolved. Every list path enforces the
	// approved+public visibility gate.
	Search(ctx context.Context, filter SearchFilter, sort SortSpec, page PageSpec) (*ResultEnvelope, error)

	// Trending returns the top videos created inside the lookback window,
	// ordered by views desc then createdAt desc, optionally scoped to one
	// genre. Returns fewer than q.Limit when the window holds fewer.
	Trending(ctx context.Context, q TrendingQuery, window time.Duration) ([]*Video, error)

	// Recommend returns videos whose genre set intersects the seed set,
	// ordered by overlap count desc, rating desc, views desc. Zero matches
	// yield an empty slice, never a popularity fallback.
	Recommend(ctx context.Context, q RecommendQuery) ([]*Video, error)

	// GetByID retrieves a single video with its uploader resolved. This
	// path does not apply the visibility gate. Returns ErrNotFound when no
	// record matches.
	GetByID(ctx context.Context, id string) (*Video, error)

	// IncrementViews atomically bumps the view counter at the store, never
	// read-modify-write at the caller. Returns ErrNotFound for unknown ids.
	IncrementViews(ctx context.Context, id string) error

	// Upsert creates or updates a video keyed by (source_id, external_id).
	Upsert(ctx context.Context, video *Video) error

	// BulkUpsert creates or updates a batch of videos.
	BulkUpsert(ctx context.Context, videos []*Video) error

	// SetStatus transitions a video's moderation state.
	SetStatus(ctx context.Context, id string, status Status) error

	// Stats returns catalog counts for the operational surface.
	Stats(ctx context.Context) (*CatalogStats, error)
}

// CatalogStats holds aggregate catalog counts.
type CatalogStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByGenre  map[string]int64 `json:"by_genre"`
}

// CatalogSource defines an upstream feed the catalog is ingested from.
// Implementations: internal/infra/feed/client.go
type CatalogSource interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Fetch retrieves the available videos from the source.
	Fetch(ctx context.Context) ([]*Video, error)

	// HealthCheck verifies the source is accessible.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
