package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"video-discovery-service/internal/domain"
	rediscache "video-discovery-service/internal/infra/redis"
)

// stubRepo implements domain.VideoRepository with canned responses and call
// counters.
type stubRepo struct {
	searchEnv    *domain.ResultEnvelope
	searchFilter domain.SearchFilter
	searchErr    error

	trendingVideos []*domain.Video
	trendingCalls  int
	trendingWindow time.Duration

	recommendVideos []*domain.Video
	recommendCalls  int

	video        *domain.Video
	getErr       error
	incremented  []string
	statusID     string
	statusValue  domain.Status
	statusErr    error
	incrementErr error
}

func (s *stubRepo) Search(_ context.Context, filter domain.SearchFilter, _ domain.SortSpec, _ domain.PageSpec) (*domain.ResultEnvelope, error) {
	s.searchFilter = filter
	return s.searchEnv, s.searchErr
}

func (s *stubRepo) Trending(_ context.Context, _ domain.TrendingQuery, window time.Duration) ([]*domain.Video, error) {
	s.trendingCalls++
	s.trendingWindow = window
	return s.trendingVideos, nil
}

func (s *stubRepo) Recommend(_ context.Context, _ domain.RecommendQuery) ([]*domain.Video, error) {
	s.recommendCalls++
	return s.recommendVideos, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Video, error) {
	return s.video, s.getErr
}

func (s *stubRepo) IncrementViews(_ context.Context, id string) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	s.incremented = append(s.incremented, id)
	if s.video != nil {
		s.video.Views++
	}
	return nil
}

func (s *stubRepo) Upsert(_ context.Context, _ *domain.Video) error { return nil }

func (s *stubRepo) BulkUpsert(_ context.Context, _ []*domain.Video) error { return nil }

func (s *stubRepo) SetStatus(_ context.Context, id string, status domain.Status) error {
	s.statusID = id
	s.statusValue = status
	return s.statusErr
}

func (s *stubRepo) Stats(_ context.Context) (*domain.CatalogStats, error) {
	return &domain.CatalogStats{Total: 1}, nil
}

func newTestCache(t *testing.T) domain.Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return rediscache.NewCache(client, zap.NewNop(), "test")
}

func newService(repo domain.VideoRepository, cache domain.Cache) *DiscoveryService {
	return NewDiscoveryService(repo, cache, DiscoveryConfig{
		TrendingWindow: 30 * 24 * time.Hour,
		TrendingTTL:    time.Minute,
	}, zap.NewNop())
}

func TestDiscoveryService_Search(t *testing.T) {
	repo := &stubRepo{
		searchEnv: domain.NewResultEnvelope([]*domain.Video{{ID: "v1"}}, 1, domain.DefaultPageSpec()),
	}
	svc := newService(repo, nil)

	env, err := svc.Search(context.Background(), domain.SearchFilter{Query: "space"}, domain.DefaultSort(), domain.DefaultPageSpec())
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.Total)
	assert.Equal(t, "space", repo.searchFilter.Query)
}

func TestDiscoveryService_ByGenre(t *testing.T) {
	repo := &stubRepo{
		searchEnv: domain.NewResultEnvelope(nil, 0, domain.DefaultPageSpec()),
	}
	svc := newService(repo, nil)

	_, err := svc.ByGenre(context.Background(), "sci-fi", domain.DefaultSort(), domain.DefaultPageSpec())
	require.NoError(t, err)
	assert.Equal(t, []string{"sci-fi"}, repo.searchFilter.Genres)
}

func TestDiscoveryService_ByGenre_Missing(t *testing.T) {
	svc := newService(&stubRepo{}, nil)

	_, err := svc.ByGenre(context.Background(), "  ", domain.DefaultSort(), domain.DefaultPageSpec())
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestDiscoveryService_Trending_WindowFromConfig(t *testing.T) {
	repo := &stubRepo{trendingVideos: []*domain.Video{{ID: "v1"}}}
	svc := newService(repo, nil)

	_, err := svc.Trending(context.Background(), domain.NewTrendingQuery("", 10))
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, repo.trendingWindow)
}

func TestDiscoveryService_Trending_DefaultWindow(t *testing.T) {
	repo := &stubRepo{}
	svc := NewDiscoveryService(repo, nil, DiscoveryConfig{}, zap.NewNop())

	_, err := svc.Trending(context.Background(), domain.NewTrendingQuery("", 10))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTrendingWindow, repo.trendingWindow)
}

func TestDiscoveryService_Trending_Cached(t *testing.T) {
	repo := &stubRepo{trendingVideos: []*domain.Video{{ID: "v1", Title: "First"}}}
	svc := newService(repo, newTestCache(t))

	ctx := context.Background()
	q := domain.NewTrendingQuery("action", 10)

	first, err := svc.Trending(ctx, q)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Trending(ctx, q)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "First", second[0].Title)

	assert.Equal(t, 1, repo.trendingCalls, "second call must be served from cache")
}

func TestDiscoveryService_Trending_CacheKeyedByGenreAndLimit(t *testing.T) {
	repo := &stubRepo{trendingVideos: []*domain.Video{{ID: "v1"}}}
	svc := newService(repo, newTestCache(t))

	ctx := context.Background()

	_, err := svc.Trending(ctx, domain.NewTrendingQuery("action", 10))
	require.NoError(t, err)

	_, err = svc.Trending(ctx, domain.NewTrendingQuery("drama", 10))
	require.NoError(t, err)

	_, err = svc.Trending(ctx, domain.NewTrendingQuery("action", 20))
	require.NoError(t, err)

	assert.Equal(t, 3, repo.trendingCalls, "distinct genre/limit pairs miss the cache")
}

func TestDiscoveryService_Recommendations(t *testing.T) {
	repo := &stubRepo{recommendVideos: []*domain.Video{{ID: "v1"}, {ID: "v2"}}}
	svc := newService(repo, nil)

	videos, err := svc.Recommendations(context.Background(), domain.NewRecommendQuery("sci-fi", 10))
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestDiscoveryService_Recommendations_NoSeeds(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo, nil)

	videos, err := svc.Recommendations(context.Background(), domain.NewRecommendQuery("", 10))
	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Zero(t, repo.recommendCalls, "empty seed set never reaches the store")
}

func TestDiscoveryService_GetByID(t *testing.T) {
	repo := &stubRepo{video: &domain.Video{ID: "v1", Views: 4}}
	svc := newService(repo, nil)

	video, err := svc.GetByID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, repo.incremented)
	assert.Equal(t, int64(5), video.Views, "returned record reflects the bump")
}

func TestDiscoveryService_GetByID_Blank(t *testing.T) {
	svc := newService(&stubRepo{}, nil)

	_, err := svc.GetByID(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestDiscoveryService_GetByID_Unknown(t *testing.T) {
	repo := &stubRepo{incrementErr: domain.ErrNotFound}
	svc := newService(repo, nil)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscoveryService_SetStatus_ClearsCache(t *testing.T) {
	repo := &stubRepo{trendingVideos: []*domain.Video{{ID: "v1"}}}
	svc := newService(repo, newTestCache(t))

	ctx := context.Background()
	q := domain.NewTrendingQuery("", 10)

	_, err := svc.Trending(ctx, q)
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, "v1", domain.StatusRejected))
	assert.Equal(t, "v1", repo.statusID)
	assert.Equal(t, domain.StatusRejected, repo.statusValue)

	_, err = svc.Trending(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.trendingCalls, "status change invalidates trending pages")
}

func TestDiscoveryService_SetStatus_StoreError(t *testing.T) {
	repo := &stubRepo{statusErr: errors.New("boom")}
	svc := newService(repo, nil)

	err := svc.SetStatus(context.Background(), "v1", domain.StatusApproved)
	assert.Error(t, err)
}
