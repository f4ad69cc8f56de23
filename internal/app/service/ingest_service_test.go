package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"video-discovery-service/internal/domain"
)

// stubSource implements domain.CatalogSource.
type stubSource struct {
	name   string
	videos []*domain.Video
	err    error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context) ([]*domain.Video, error) {
	return s.videos, s.err
}

func (s *stubSource) HealthCheck(_ context.Context) error { return nil }

// upsertRecorder tracks BulkUpsert calls on top of stubRepo.
type upsertRecorder struct {
	stubRepo
	upserted [][]*domain.Video
	fail     bool
}

func (r *upsertRecorder) BulkUpsert(_ context.Context, videos []*domain.Video) error {
	if r.fail {
		return errors.New("store down")
	}
	r.upserted = append(r.upserted, videos)
	return nil
}

func TestIngestService_IngestAll(t *testing.T) {
	repo := &upsertRecorder{}
	svc := NewIngestService(repo, []domain.CatalogSource{
		&stubSource{name: "alpha", videos: []*domain.Video{{ID: "a1"}, {ID: "a2"}}},
		&stubSource{name: "beta", videos: []*domain.Video{{ID: "b1"}}},
	}, zap.NewNop())

	results := svc.IngestAll(context.Background())
	require.Len(t, results, 2)

	byName := map[string]IngestResult{}
	for _, r := range results {
		byName[r.Source] = r
	}

	assert.Equal(t, 2, byName["alpha"].Count)
	assert.Equal(t, 1, byName["beta"].Count)
	assert.Len(t, repo.upserted, 2)
}

func TestIngestService_IngestAll_PartialFailure(t *testing.T) {
	repo := &upsertRecorder{}
	svc := NewIngestService(repo, []domain.CatalogSource{
		&stubSource{name: "alpha", err: errors.New("feed down")},
		&stubSource{name: "beta", videos: []*domain.Video{{ID: "b1"}}},
	}, zap.NewNop())

	results := svc.IngestAll(context.Background())
	require.Len(t, results, 2)

	var failed, ok int
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			ok += r.Count
		}
	}

	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, ok, "healthy sources still ingest")
}

func TestIngestService_IngestSource(t *testing.T) {
	repo := &upsertRecorder{}
	svc := NewIngestService(repo, []domain.CatalogSource{
		&stubSource{name: "alpha", videos: []*domain.Video{{ID: "a1"}}},
	}, zap.NewNop())

	result := svc.IngestSource(context.Background(), "alpha")
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Count)

	assert.Nil(t, svc.IngestSource(context.Background(), "unknown"))
}

func TestIngestService_IngestSource_UpsertError(t *testing.T) {
	repo := &upsertRecorder{fail: true}
	svc := NewIngestService(repo, []domain.CatalogSource{
		&stubSource{name: "alpha", videos: []*domain.Video{{ID: "a1"}}},
	}, zap.NewNop())

	result := svc.IngestSource(context.Background(), "alpha")
	require.NotNil(t, result)
	assert.Error(t, result.Error)
	assert.Zero(t, result.Count)
}

func TestIngestService_SourceNames(t *testing.T) {
	svc := NewIngestService(&upsertRecorder{}, []domain.CatalogSource{
		&stubSource{name: "alpha"},
		&stubSource{name: "beta"},
	}, zap.NewNop())

	assert.Equal(t, []string{"alpha", "beta"}, svc.SourceNames())
}
