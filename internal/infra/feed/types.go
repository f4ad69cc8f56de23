package feed

import (
	"time"

	"video-discovery-service/internal/domain"
)

// Response represents the JSON payload of the feed's videos endpoint.
type Response struct {
	Videos []VideoItem `json:"videos"`
	Total  int         `json:"total"`
}

// VideoItem represents a single video in the feed payload.
type VideoItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Genres      []string `json:"genres"`
	Director    string   `json:"director"`
	Language    string   `json:"language"`
	ReleaseYear int      `json:"release_year"`
	Rating      float64  `json:"rating"`
	Public      bool     `json:"public"`
	PublishedAt string   `json:"published_at"`
}

// ToDomain converts a feed item to a domain.Video. Ingested records enter the
// catalog pending; moderation decides visibility.
func (i *VideoItem) ToDomain(sourceID string) *domain.Video {
	v := domain.NewVideo(sourceID, i.ID, i.Title)
	v.Description = i.Description
	v.Tags = i.Tags
	v.Genres = i.Genres
	v.Director = i.Director
	v.Language = i.Language
	v.ReleaseYear = i.ReleaseYear
	v.Rating = clampRating(i.Rating)
	v.IsPublic = i.Public

	if published, err := time.Parse(time.RFC3339, i.PublishedAt); err == nil {
		v.CreatedAt = published
	}

	return v
}

// clampRating keeps the feed's rating inside the catalog invariant [0, 10].
func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 10 {
		return 10
	}
	return r
}
