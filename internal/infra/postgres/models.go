package postgres

import (
	"time"

	"video-discovery-service/internal/domain"

	"github.com/lib/pq"
)

// VideoModel is the GORM model for the videos table.
type VideoModel struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceID   string `gorm:"type:varchar(50);not null;index:idx_source_external,unique"`
	ExternalID string `gorm:"type:varchar(100);not null;index:idx_source_external,unique"`

	Title       string         `gorm:"type:varchar(500);not null"`
	Description string         `gorm:"type:text"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	Genres      pq.StringArray `gorm:"type:text[];not null"`
	Director    string         `gorm:"type:varchar(200)"`
	Language    string         `gorm:"type:varchar(10)"`
	ReleaseYear int            `gorm:"default:0"`

	// Metrics
	Rating float64 `gorm:"type:decimal(3,1);default:0;index"`
	Views  int64   `gorm:"default:0;index"`

	// Visibility
	Status   string `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsPublic bool   `gorm:"default:false"`

	// Relationship; nullable because ingested records carry no uploader.
	// List and detail paths resolve a three-field projection.
	UploadedBy *string        `gorm:"type:uuid;index"`
	Uploader   *UploaderModel `gorm:"foreignKey:UploadedBy"`

	// Timestamps
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for VideoModel.
func (VideoModel) TableName() string {
	return "videos"
}

// UploaderModel is the GORM model for the uploaders table. Credentials and
// email exist on the row but are never selected into responses.
type UploaderModel struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Avatar       string    `gorm:"type:varchar(500)"`
	Email        string    `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for UploaderModel.
func (UploaderModel) TableName() string {
	return "uploaders"
}

// ToDomain converts VideoModel to domain.Video.
func (m *VideoModel) ToDomain() *domain.Video {
	v := &domain.Video{
		ID:          m.ID,
		SourceID:    m.SourceID,
		ExternalID:  m.ExternalID,
		Title:       m.Title,
		Description: m.Description,
		Tags:        m.Tags,
		Genres:      m.Genres,
		Director:    m.Director,
		Language:    m.Language,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		Views:       m.Views,
		Status:      domain.Status(m.Status),
		IsPublic:    m.IsPublic,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.UploadedBy != nil {
		v.UploadedBy = *m.UploadedBy
	}

	if m.Uploader != nil {
		v.Uploader = &domain.Uploader{
			ID:       m.Uploader.ID,
			Username: m.Uploader.Username,
			Avatar:   m.Uploader.Avatar,
		}
	}

	return v
}

// FromDomain creates a VideoModel from domain.Video.
func FromDomain(v *domain.Video) *VideoModel {
	var uploadedBy *string
	if v.UploadedBy != "" {
		id := v.UploadedBy
		uploadedBy = &id
	}

	return &VideoModel{
		ID:          v.ID,
		SourceID:    v.SourceID,
		ExternalID:  v.ExternalID,
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
		UploadedBy:  uploadedBy,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// FromDomainSlice converts a slice of domain.Video to VideoModels.
func FromDomainSlice(videos []*domain.Video) []*VideoModel {
	models := make([]*VideoModel, len(videos))
	for i, v := range videos {
		models[i] = FromDomain(v)
	}

	return models
}

// toDomainSlice converts query output back to domain entities.
func toDomainSlice(models []VideoModel) []*domain.Video {
	videos := make([]*domain.Video, len(models))
	for i := range models {
		videos[i] = models[i].ToDomain()
	}

	return videos
}
