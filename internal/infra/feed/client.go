// Package feed implements the domain.CatalogSource port over an upstream
// catalog feed's HTTP API.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"video-discovery-service/internal/domain"
)

// Default API paths on the upstream feed.
const (
	videosEndpoint = "/api/videos"
	healthEndpoint = "/health"
)

// ClientConfig holds configuration for a feed client.
type ClientConfig struct {
	Name    string
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.CatalogSource for an upstream catalog feed.
// Transient failures are retried with backoff; a tripped breaker fails fast
// until the feed recovers.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new feed client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		name:   cfg.Name,
		client: client,
		cb:     gobreaker.NewCircuitBreaker[*resty.Response](settings),
		logger: logger,
	}
}

// Name returns the feed identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the available videos from the feed.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Video, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(videosEndpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("feed %s returned status %d", c.name, r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("feed fetch failed",
			zap.String("feed", c.name),
			zap.String("breaker_state", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, fmt.Errorf("fetching from feed %s: %w", c.name, err)
	}

	result := resp.Result().(*Response)
	videos := make([]*domain.Video, 0, len(result.Videos))
	for _, item := range result.Videos {
		videos = append(videos, item.ToDomain(c.name))
	}

	c.logger.Info("feed fetch completed",
		zap.String("feed", c.name),
		zap.Int("count", len(videos)),
	)

	return videos, nil
}

// HealthCheck verifies the feed is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(healthEndpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
