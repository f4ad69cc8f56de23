package feed

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"video-discovery-service/internal/domain"
)

const testEndpoint = "https://feed.example.com/api/videos"

func newTestClient() *Client {
	cfg := ClientConfig{
		Name:    "cms",
		BaseURL: "https://feed.example.com",
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 2,
			WaitTime:    10 * time.Millisecond,
			MaxWaitTime: 50 * time.Millisecond,
		},
		CB: CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	// Activate httpmock for this client's HTTP transport
	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func mockFeedResponse() Response {
	return Response{
		Videos: []VideoItem{
			{
				ID:          "vid-1",
				Title:       "Inception",
				Description: "A thief who steals corporate secrets",
				Tags:        []string{"heist", "dreams"},
				Genres:      []string{"Sci-Fi", "Thriller"},
				Director:    "Christopher Nolan",
				Language:    "en",
				ReleaseYear: 2010,
				Rating:      8.8,
				Public:      true,
				PublishedAt: "2024-01-15T10:00:00Z",
			},
			{
				ID:          "vid-2",
				Title:       "Overrated",
				Genres:      []string{"Drama"},
				Rating:      14.2, // out of the catalog's bounds
				PublishedAt: "not-a-timestamp",
			},
		},
		Total: 2,
	}
}

func TestFeed_Fetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockFeedResponse()))

	client := newTestClient()
	videos, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "cms", videos[0].SourceID)
	assert.Equal(t, "vid-1", videos[0].ExternalID)
	assert.Equal(t, "Inception", videos[0].Title)
	assert.Equal(t, []string{"Sci-Fi", "Thriller"}, videos[0].Genres)
	assert.Equal(t, 8.8, videos[0].Rating)
	assert.True(t, videos[0].IsPublic)
	assert.Equal(t, domain.StatusPending, videos[0].Status, "ingested records enter pending")
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), videos[0].CreatedAt)

	// Out-of-bounds ratings are clamped; bad timestamps keep the default.
	assert.Equal(t, 10.0, videos[1].Rating)
	assert.False(t, videos[1].CreatedAt.IsZero())
}

func TestFeed_Fetch_ServerError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	client := newTestClient()
	_, err := client.Fetch(context.Background())

	assert.Error(t, err)
}

func TestFeed_Fetch_CircuitBreakerOpens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	client := newTestClient()
	ctx := context.Background()

	// Repeated failures trip the breaker; later calls fail fast.
	for i := 0; i < 5; i++ {
		_, _ = client.Fetch(ctx)
	}

	assert.Equal(t, "open", client.cb.State().String())
}

func TestFeed_HealthCheck(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://feed.example.com/health",
		httpmock.NewStringResponder(200, "ok"))

	client := newTestClient()
	assert.NoError(t, client.HealthCheck(context.Background()))
}
