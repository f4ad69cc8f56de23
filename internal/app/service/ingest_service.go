package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"video-discovery-service/internal/domain"
)

// IngestService pulls catalog records from the configured upstream sources
// and upserts them into the store.
type IngestService struct {
	repo    domain.VideoRepository
	sources []domain.CatalogSource
	logger  *zap.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(repo domain.VideoRepository, sources []domain.CatalogSource, logger *zap.Logger) *IngestService {
	return &IngestService{
		repo:    repo,
		sources: sources,
		logger:  logger,
	}
}

// IngestResult holds the result of ingesting one source.
type IngestResult struct {
	Source   string
	Count    int
	Duration time.Duration
	Error    error
}

// IngestAll ingests from all sources concurrently. Partial failures are
// allowed; each source reports its own result.
func (s *IngestService) IngestAll(ctx context.Context) []IngestResult {
	results := make([]IngestResult, len(s.sources))
	var wg sync.WaitGroup

	s.logger.Info("starting catalog ingest",
		zap.Int("source_count", len(s.sources)),
	)

	for i, source := range s.sources {
		wg.Add(1)
		go func(idx int, src domain.CatalogSource) {
			defer wg.Done()
			results[idx] = s.ingestSource(ctx, src)
		}(i, source)
	}

	wg.Wait()

	ingested, failed := 0, 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			ingested += r.Count
		}
	}

	s.logger.Info("catalog ingest completed",
		zap.Int("total_ingested", ingested),
		zap.Int("sources_failed", failed),
	)

	return results
}

// IngestSource ingests from a single named source. Returns nil when no source
// with that name is configured.
func (s *IngestService) IngestSource(ctx context.Context, name string) *IngestResult {
	for _, source := range s.sources {
		if source.Name() == name {
			result := s.ingestSource(ctx, source)
			return &result
		}
	}

	return nil
}

// SourceNames lists the configured source identifiers.
func (s *IngestService) SourceNames() []string {
	names := make([]string, len(s.sources))
	for i, source := range s.sources {
		names[i] = source.Name()
	}

	return names
}

func (s *IngestService) ingestSource(ctx context.Context, source domain.CatalogSource) IngestResult {
	start := time.Now()
	result := IngestResult{Source: source.Name()}

	videos, err := source.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("source fetch failed",
			zap.String("source", source.Name()),
			zap.Error(err),
		)
		return result
	}

	if len(videos) > 0 {
		if err := s.repo.BulkUpsert(ctx, videos); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("bulk upsert failed",
				zap.String("source", source.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	result.Count = len(videos)
	result.Duration = time.Since(start)

	s.logger.Info("source ingest completed",
		zap.String("source", source.Name()),
		zap.Int("count", result.Count),
		zap.Duration("duration", result.Duration),
	)

	return result
}
