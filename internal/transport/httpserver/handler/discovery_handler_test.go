package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"video-discovery-service/internal/app/service"
	"video-discovery-service/internal/domain"
	"video-discovery-service/internal/validator"
)

// fixedRepo implements domain.VideoRepository with canned responses.
type fixedRepo struct {
	env *domain.ResultEnvelope
}

func (r *fixedRepo) Search(_ context.Context, _ domain.SearchFilter, _ domain.SortSpec, _ domain.PageSpec) (*domain.ResultEnvelope, error) {
	return r.env, nil
}

func (r *fixedRepo) Trending(_ context.Context, _ domain.TrendingQuery, _ time.Duration) ([]*domain.Video, error) {
	return nil, nil
}

func (r *fixedRepo) Recommend(_ context.Context, _ domain.RecommendQuery) ([]*domain.Video, error) {
	return nil, nil
}

func (r *fixedRepo) GetByID(_ context.Context, _ string) (*domain.Video, error) {
	return nil, domain.ErrNotFound
}

func (r *fixedRepo) IncrementViews(_ context.Context, _ string) error { return nil }

func (r *fixedRepo) Upsert(_ context.Context, _ *domain.Video) error { return nil }

func (r *fixedRepo) BulkUpsert(_ context.Context, _ []*domain.Video) error { return nil }

func (r *fixedRepo) SetStatus(_ context.Context, _ string, _ domain.Status) error { return nil }

func (r *fixedRepo) Stats(_ context.Context) (*domain.CatalogStats, error) {
	return &domain.CatalogStats{}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := &fixedRepo{env: domain.NewResultEnvelope(nil, 0, domain.DefaultPageSpec())}
	svc := service.NewDiscoveryService(repo, nil, service.DiscoveryConfig{}, zap.NewNop())
	h := NewDiscoveryHandler(svc, validator.New(), zap.NewNop())

	app := fiber.New()
	videos := app.Group("/api/v1/videos")
	videos.Get("/", h.Search)
	videos.Get("/genre/:genre", h.ByGenre)

	return app
}

func TestDiscoveryHandler_ByGenre_Valid(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/genre/action?sortBy=rating&order=asc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDiscoveryHandler_ByGenre_RejectsOversizedParams(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name  string
		query string
	}{
		{"oversized sortBy", "sortBy=" + strings.Repeat("s", 21)},
		{"oversized page", "page=" + strings.Repeat("9", 11)},
		{"oversized query", "q=" + strings.Repeat("a", 201)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/genre/action?"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
				"genre browse enforces the same parameter caps as search")
		})
	}
}

func TestDiscoveryHandler_Search_RejectsOversizedParams(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/?q="+strings.Repeat("a", 201), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
