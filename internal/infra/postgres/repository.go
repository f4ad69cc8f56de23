package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lib/pq"

	"video-discovery-service/internal/domain"
)

// Repository implements domain.VideoRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// uploaderProjection limits the resolved uploader to the public three-field
// shape. Email and credentials stay on the row, never in results.
func uploaderProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "avatar")
}

// Search executes one faceted plan: a filtered count and a filtered, sorted,
// paginated page built from the same predicate set, sharing one session and
// prepared statement cache. All-or-nothing: any failure surfaces as a store
// error, never a partial envelope.
func (r *Repository) Search(ctx context.Context, filter domain.SearchFilter, sort domain.SortSpec, page domain.PageSpec) (*domain.ResultEnvelope, error) {
	base := r.applyFilter(r.db.Model(&VideoModel{}), filter)

	var total int64
	if err := base.WithContext(ctx).Count(&total).Error; err != nil {
		return nil, storeErr("counting videos", err)
	}

	var models []VideoModel
	err := r.applySort(base.WithContext(ctx), sort).
		Offset(page.Offset()).
		Limit(page.Limit).
		Preload("Uploader", uploaderProjection).
		Find(&models).Error
	if err != nil {
		return nil, storeErr("searching videos", err)
	}

	return domain.NewResultEnvelope(toDomainSlice(models), total, page), nil
}

// Trending returns the top videos created inside the lookback window, ordered
// by views desc with createdAt desc breaking view ties. Fewer than q.Limit
// rows inside the window is not an error.
func (r *Repository) Trending(ctx context.Context, q domain.TrendingQuery, window time.Duration) ([]*domain.Video, error) {
	cutoff := time.Now().UTC().Add(-window)

	query := r.visible(r.db.WithContext(ctx).Model(&VideoModel{})).
		Where("created_at >= ?", cutoff)

	if q.Genre != "" {
		query = query.Where("genres && ?", pq.Array([]string{q.Genre}))
	}

	var models []VideoModel
	err := query.
		Order("views DESC").
		Order("created_at DESC").
		Order("id ASC").
		Limit(q.Limit).
		Preload("Uploader", uploaderProjection).
		Find(&models).Error
	if err != nil {
		return nil, storeErr("ranking trending videos", err)
	}

	return toDomainSlice(models), nil
}

// Recommend returns visible videos whose genre set intersects the seed set,
// ordered by overlap count desc, then rating desc, views desc, id asc. The
// overlap is computed in SQL over the genres array. Zero matches yield an
// empty slice; there is no popularity fallback.
func (r *Repository) Recommend(ctx context.Context, q domain.RecommendQuery) ([]*domain.Video, error) {
	if len(q.Genres) == 0 {
		return []*domain.Video{}, nil
	}

	seeds := pq.Array(q.Genres)

	var models []VideoModel
	err := r.visible(r.db.WithContext(ctx).Model(&VideoModel{})).
		Where("genres && ?", seeds).
		Clauses(clause.OrderBy{Expression: gorm.Expr(
			"(SELECT count(*) FROM unnest(genres) g WHERE g = ANY(?)) DESC, rating DESC, views DESC, id ASC",
			seeds,
		)}).
		Limit(q.Limit).
		Preload("Uploader", uploaderProjection).
		Find(&models).Error
	if err != nil {
		return nil, storeErr("ranking recommendations", err)
	}

	return toDomainSlice(models), nil
}

// GetByID retrieves a single video with its uploader resolved. No visibility
// gate here: admins previewing unapproved content depend on this path.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var model VideoModel
	err := r.db.WithContext(ctx).
		Preload("Uploader", uploaderProjection).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}

		return nil, storeErr("getting video by id", err)
	}

	return model.ToDomain(), nil
}

// IncrementViews bumps the view counter with a single atomic UPDATE at the
// store, so concurrent viewers never lose updates.
func (r *Repository) IncrementViews(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&VideoModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return storeErr("incrementing views", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Upsert creates or updates a single video keyed by (source_id, external_id).
func (r *Repository) Upsert(ctx context.Context, video *domain.Video) error {
	model := FromDomain(video)
	model.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(model).Error
	if err != nil {
		return storeErr("upserting video", err)
	}

	video.ID = model.ID
	video.CreatedAt = model.CreatedAt
	video.UpdatedAt = model.UpdatedAt

	return nil
}

// BulkUpsert creates or updates a batch of videos.
func (r *Repository) BulkUpsert(ctx context.Context, videos []*domain.Video) error {
	if len(videos) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := FromDomainSlice(videos)
	for _, m := range models {
		m.UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return storeErr("bulk upserting videos", err)
	}

	for i, m := range models {
		videos[i].ID = m.ID
		videos[i].CreatedAt = m.CreatedAt
		videos[i].UpdatedAt = m.UpdatedAt
	}

	return nil
}

// upsertColumns are the fields refreshed when an ingested record already
// exists. Views and status are deliberately excluded: the counter only moves
// through IncrementViews and moderation only through SetStatus.
var upsertColumns = []string{
	"title", "description", "tags", "genres", "director", "language",
	"release_year", "rating", "is_public", "updated_at",
}

// SetStatus transitions a video's moderation state.
func (r *Repository) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidParameter, status)
	}

	result := r.db.WithContext(ctx).
		Model(&VideoModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return storeErr("setting video status", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Stats returns aggregate catalog counts for the operational surface.
func (r *Repository) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	stats := &domain.CatalogStats{
		ByStatus: make(map[string]int64),
		ByGenre:  make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&VideoModel{}).Count(&stats.Total).Error; err != nil {
		return nil, storeErr("counting videos", err)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	err := r.db.WithContext(ctx).Model(&VideoModel{}).
		Select("status AS key, count(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, storeErr("counting videos by status", err)
	}
	for _, b := range byStatus {
		stats.ByStatus[b.Key] = b.Count
	}

	var byGenre []bucket
	err = r.db.WithContext(ctx).
		Table("videos, unnest(genres) AS genre").
		Select("genre AS key, count(*) AS count").
		Group("genre").
		Scan(&byGenre).Error
	if err != nil {
		return nil, storeErr("counting videos by genre", err)
	}
	for _, b := range byGenre {
		stats.ByGenre[b.Key] = b.Count
	}

	return stats, nil
}

// applyFilter translates a SearchFilter into WHERE clauses, always conjoining
// the approved+public visibility gate. Absent fields add no clause. All
// parameters are bound; nothing is interpolated.
func (r *Repository) applyFilter(query *gorm.DB, filter domain.SearchFilter) *gorm.DB {
	query = r.visible(query)

	// OR-across-fields text test: case-insensitive substring against
	// title, description, or any tag.
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(
			"(title ILIKE ? OR description ILIKE ? OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE ?))",
			pattern, pattern, pattern,
		)
	}

	// Genre set intersection: one matching genre qualifies.
	if len(filter.Genres) > 0 {
		query = query.Where("genres && ?", pq.Array(filter.Genres))
	}

	if filter.Language != "" {
		query = query.Where("LOWER(language) = LOWER(?)", filter.Language)
	}

	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}

	if filter.Director != "" {
		query = query.Where("director ILIKE ?", "%"+filter.Director+"%")
	}

	if filter.Year != nil {
		query = query.Where("release_year = ?", *filter.Year)
	}

	return query
}

// visible conjoins the public-facing visibility gate.
func (r *Repository) visible(query *gorm.DB) *gorm.DB {
	return query.Where("status = ? AND is_public = TRUE", string(domain.StatusApproved))
}

// applySort adds ORDER BY for the resolved SortSpec. The trailing id asc key
// keeps pages stable when primary values collide (e.g. many rating 8.0 rows).
func (r *Repository) applySort(query *gorm.DB, sort domain.SortSpec) *gorm.DB {
	direction := "DESC"
	if sort.Order == domain.SortOrderAsc {
		direction = "ASC"
	}

	var column string
	switch sort.Field {
	case domain.SortFieldViews:
		column = "views"
	case domain.SortFieldRating:
		column = "rating"
	case domain.SortFieldTitle:
		column = "title"
	default:
		column = "created_at"
	}

	return query.Order(column + " " + direction).Order("id ASC")
}

// storeErr maps driver failures onto the domain error taxonomy, keeping the
// underlying cause in the message for logs while exposing a matchable
// sentinel to callers.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStoreTimeout)
	}

	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStoreUnavailable)
}
