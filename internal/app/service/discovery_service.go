// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"video-discovery-service/internal/domain"
)

// DiscoveryService drives the read paths of the catalog: general search,
// genre browse, trending, recommendations, and detail fetch. It is
// request-scoped and stateless between invocations; every call builds fresh
// filter/sort/page values and executes one independent read.
type DiscoveryService struct {
	repo           domain.VideoRepository
	cache          domain.Cache // nil when caching is disabled
	trendingWindow time.Duration
	trendingTTL    time.Duration
	logger         *zap.Logger
}

// DiscoveryConfig holds discovery tuning.
type DiscoveryConfig struct {
	TrendingWindow time.Duration
	TrendingTTL    time.Duration
}

// NewDiscoveryService creates a new DiscoveryService. cache may be nil.
func NewDiscoveryService(repo domain.VideoRepository, cache domain.Cache, cfg DiscoveryConfig, logger *zap.Logger) *DiscoveryService {
	window := cfg.TrendingWindow
	if window <= 0 {
		window = domain.DefaultTrendingWindow
	}

	return &DiscoveryService{
		repo:           repo,
		cache:          cache,
		trendingWindow: window,
		trendingTTL:    cfg.TrendingTTL,
		logger:         logger,
	}
}

// Search runs the general discovery plan: filter, sort, paginate, shape.
func (s *DiscoveryService) Search(ctx context.Context, filter domain.SearchFilter, sort domain.SortSpec, page domain.PageSpec) (*domain.ResultEnvelope, error) {
	s.logger.Debug("searching videos",
		zap.String("query", filter.Query),
		zap.Strings("genres", filter.Genres),
		zap.String("sort", string(sort.Field)),
		zap.Int("page", page.Page),
		zap.Int("limit", page.Limit),
	)

	env, err := s.repo.Search(ctx, filter, sort, page)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("search completed",
		zap.Int64("total", env.Total),
		zap.Int("count", len(env.Items)),
	)

	return env, nil
}

// ByGenre is the genre-scoped variant of the same planner.
func (s *DiscoveryService) ByGenre(ctx context.Context, genre string, sort domain.SortSpec, page domain.PageSpec) (*domain.ResultEnvelope, error) {
	filter := domain.GenreFilter(genre)
	if len(filter.Genres) == 0 {
		return nil, fmt.Errorf("%w: genre is required", domain.ErrInvalidParameter)
	}

	return s.Search(ctx, filter, sort, page)
}

// Trending returns the windowed, view-ordered ranking. The window is service
// configuration; callers choose only a limit and an optional genre. Results
// are cached when a cache is wired, keyed by genre and limit.
func (s *DiscoveryService) Trending(ctx context.Context, q domain.TrendingQuery) ([]*domain.Video, error) {
	key := trendingCacheKey(q)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var videos []*domain.Video
			if err := json.Unmarshal(data, &videos); err == nil {
				return videos, nil
			}
			// Corrupt entry; fall through to the store and overwrite.
		}
	}

	videos, err := s.repo.Trending(ctx, q, s.trendingWindow)
	if err != nil {
		s.logger.Error("trending ranking failed", zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(videos); err == nil {
			_ = s.cache.Set(ctx, key, data, s.trendingTTL)
		}
	}

	return videos, nil
}

// Recommendations returns the genre-overlap ranking for a seed genre set.
// Excluding the item currently being viewed is the caller's responsibility.
func (s *DiscoveryService) Recommendations(ctx context.Context, q domain.RecommendQuery) ([]*domain.Video, error) {
	if len(q.Genres) == 0 {
		return []*domain.Video{}, nil
	}

	videos, err := s.repo.Recommend(ctx, q)
	if err != nil {
		s.logger.Error("recommendation ranking failed", zap.Error(err))
		return nil, err
	}

	return videos, nil
}

// GetByID fetches one video, bumping its view counter as a side effect. The
// increment happens atomically at the store and the returned record reflects
// it. No visibility gate on this path: admin preview flows depend on seeing
// unapproved records.
func (s *DiscoveryService) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidParameter)
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}

	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("get by id failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return video, nil
}

// SetStatus transitions a video's moderation state and drops cached trending
// pages, since visibility changes can alter the ranking.
func (s *DiscoveryService) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Clear(ctx)
	}

	s.logger.Info("video status changed",
		zap.String("id", id),
		zap.String("status", string(status)),
	)

	return nil
}

// Stats returns aggregate catalog counts.
func (s *DiscoveryService) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	return s.repo.Stats(ctx)
}

func trendingCacheKey(q domain.TrendingQuery) string {
	genre := q.Genre
	if genre == "" {
		genre = "all"
	}

	return fmt.Sprintf("trending:%s:%d", strings.ToLower(genre), q.Limit)
}
