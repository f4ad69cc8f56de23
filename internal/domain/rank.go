package domain

import (
	"time"
)

// Ranker bounds. Both rankers clamp their limit to [1, MaxRankLimit].
const (
	DefaultRankLimit = 10
	MaxRankLimit     = 50

	// DefaultTrendingWindow is the fixed lookback used by the trending
	// ranker. The window is service configuration, never caller-supplied,
	// so the ranking stays deterministic and cache-friendly.
	DefaultTrendingWindow = 30 * 24 * time.Hour
)

// TrendingQuery scopes the trending read path: an optional single genre and a
// clamped result count. It deliberately accepts no other filters.
type TrendingQuery struct {
	Genre string
	Limit int
}

// NewTrendingQuery builds a clamped TrendingQuery.
func NewTrendingQuery(genre string, limit int) TrendingQuery {
	return TrendingQuery{Genre: genre, Limit: clampRankLimit(limit)}
}

// RecommendQuery scopes the recommendation read path: a seed genre set and a
// clamped result count. Excluding the item being viewed is the caller's job.
type RecommendQuery struct {
	Genres []string
	Limit  int
}

// NewRecommendQuery builds a clamped RecommendQuery. The genre parameter is
// comma-separated, like the search filter's.
func NewRecommendQuery(genres string, limit int) RecommendQuery {
	return RecommendQuery{Genres: splitGenres(genres), Limit: clampRankLimit(limit)}
}

func clampRankLimit(limit int) int {
	if limit < 1 {
		return DefaultRankLimit
	}
	if limit > MaxRankLimit {
		return MaxRankLimit
	}
	return limit
}

// InTrendingWindow reports whether a video's creation time falls inside the
// lookback window ending at now.
func InTrendingWindow(v *Video, now time.Time, window time.Duration) bool {
	return !v.CreatedAt.Before(now.Add(-window))
}

// TrendingLess is the trending order: views desc, then createdAt desc (newer
// wins a view tie). Repositories translate the same order to SQL.
func TrendingLess(a, b *Video) bool {
	if a.Views != b.Views {
		return a.Views > b.Views
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// GenreOverlap counts how many seed genres appear in the candidate's genre
// set, compared case-insensitively. This is the primary recommendation key.
func GenreOverlap(seeds []string, v *Video) int {
	overlap := 0
	for _, s := range seeds {
		if v.HasGenre(s) {
			overlap++
		}
	}
	return overlap
}

// RecommendLess is the recommendation order for a given seed set: genre
// overlap desc, then rating desc, then views desc, then id asc.
func RecommendLess(seeds []string, a, b *Video) bool {
	oa, ob := GenreOverlap(seeds, a), GenreOverlap(seeds, b)
	if oa != ob {
		return oa > ob
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if a.Views != b.Views {
		return a.Views > b.Views
	}
	return a.ID < b.ID
}
