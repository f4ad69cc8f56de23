package dto

import (
	"time"

	"video-discovery-service/internal/app/service"
	"video-discovery-service/internal/domain"
)

// UploaderResponse is the public uploader projection: id, username, avatar,
// nothing else.
type UploaderResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// VideoResponse represents a single video in API responses.
type VideoResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Genres      []string `json:"genres"`
	Director    string   `json:"director,omitempty"`
	Language    string   `json:"language,omitempty"`
	ReleaseYear int      `json:"release_year,omitempty"`

	Rating float64 `json:"rating"`
	Views  int64   `json:"views"`

	Status   string `json:"status"`
	IsPublic bool   `json:"is_public"`

	Uploader *UploaderResponse `json:"uploader,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FromDomainVideo converts domain.Video to VideoResponse.
func FromDomainVideo(v *domain.Video) VideoResponse {
	resp := VideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Tags:        v.Tags,
		Genres:      v.Genres,
		Director:    v.Director,
		Language:    v.Language,
		ReleaseYear: v.ReleaseYear,
		Rating:      v.Rating,
		Views:       v.Views,
		Status:      string(v.Status),
		IsPublic:    v.IsPublic,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}

	if v.Uploader != nil {
		resp.Uploader = &UploaderResponse{
			ID:       v.Uploader.ID,
			Username: v.Uploader.Username,
			Avatar:   v.Uploader.Avatar,
		}
	}

	return resp
}

// ListResponse is the envelope every list-returning endpoint shares.
type ListResponse struct {
	Items      []VideoResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	HasMore    bool            `json:"has_more"`
}

// FromEnvelope converts domain.ResultEnvelope to ListResponse.
func FromEnvelope(env *domain.ResultEnvelope) ListResponse {
	items := make([]VideoResponse, len(env.Items))
	for i, v := range env.Items {
		items[i] = FromDomainVideo(v)
	}

	return ListResponse{
		Items:      items,
		Total:      env.Total,
		Page:       env.Page,
		Limit:      env.Limit,
		TotalPages: env.TotalPages,
		HasMore:    env.HasMore,
	}
}

// FromRankedVideos shapes a ranker's output through the same envelope as the
// planner paths, so every list endpoint looks identical on the wire.
func FromRankedVideos(videos []*domain.Video, limit int) ListResponse {
	env := domain.NewResultEnvelope(videos, int64(len(videos)), domain.PageSpec{Page: 1, Limit: limit})
	return FromEnvelope(env)
}

// IngestResultResponse represents the outcome for one catalog source.
type IngestResultResponse struct {
	Source   string `json:"source"`
	Count    int    `json:"count"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// IngestResponse represents the response for an ingest-all trigger.
type IngestResponse struct {
	Results []IngestResultResponse `json:"results"`
	Summary IngestSummary          `json:"summary"`
}

// IngestSummary aggregates an ingest run.
type IngestSummary struct {
	TotalIngested int `json:"total_ingested"`
	SourcesOK     int `json:"sources_ok"`
	SourcesFail   int `json:"sources_fail"`
}

// FromIngestResults converts service.IngestResult slice to IngestResponse.
func FromIngestResults(results []service.IngestResult) IngestResponse {
	resp := IngestResponse{
		Results: make([]IngestResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.SourcesFail++
		} else {
			resp.Summary.TotalIngested += r.Count
			resp.Summary.SourcesOK++
		}

		resp.Results[i] = IngestResultResponse{
			Source:   r.Source,
			Count:    r.Count,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// StatsResponse represents catalog stats for the dashboard and stats routes.
type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByGenre  map[string]int64 `json:"by_genre"`
}

// FromStats converts domain.CatalogStats to StatsResponse.
func FromStats(s *domain.CatalogStats) StatsResponse {
	return StatsResponse{
		Total:    s.Total,
		ByStatus: s.ByStatus,
		ByGenre:  s.ByGenre,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
