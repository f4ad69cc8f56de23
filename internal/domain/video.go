// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"strings"
	"time"
)

// Status represents the moderation state of a video.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Uploader is the lightweight projection of the user who uploaded a video.
// List and detail responses expose these three fields only.
type Uploader struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Video is the unit being searched and ranked.
type Video struct {
	// Primary identifiers
	ID         string `json:"id"`          // Internal UUID
	SourceID   string `json:"source_id"`   // Catalog source that produced the record ("local" for uploads)
	ExternalID string `json:"external_id"` // ID within the source (unique per source)

	// Descriptive attributes
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Genres      []string `json:"genres"`
	Director    string   `json:"director,omitempty"`
	Language    string   `json:"language,omitempty"`
	ReleaseYear int      `json:"release_year,omitempty"`

	// Metrics
	Rating float64 `json:"rating"` // 0.0 - 10.0
	Views  int64   `json:"views"`

	// Visibility
	Status   Status `json:"status"`
	IsPublic bool   `json:"is_public"`

	// Relationship; Uploader is resolved by a join, never embedded.
	UploadedBy string    `json:"uploaded_by,omitempty"`
	Uploader   *Uploader `json:"uploader,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVideo creates a new Video with timestamps set and a pending status.
func NewVideo(sourceID, externalID, title string) *Video {
	now := time.Now().UTC()
	return &Video{
		SourceID:   sourceID,
		ExternalID: externalID,
		Title:      title,
		Genres:     []string{},
		Tags:       []string{},
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Visible reports whether the video is eligible for public-facing list paths.
// Detail fetches by ID deliberately skip this gate so admins can preview
// unapproved content.
func (v *Video) Visible() bool {
	return v.Status == StatusApproved && v.IsPublic
}

// HasGenre reports whether the video carries the given genre,
// compared case-insensitively.
func (v *Video) HasGenre(genre string) bool {
	for _, g := range v.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// AgeAt returns how long before now the video was created.
func (v *Video) AgeAt(now time.Time) time.Duration {
	return now.Sub(v.CreatedAt)
}
