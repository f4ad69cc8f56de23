// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "video-discovery-service/internal/domain"

// SearchRequest represents the query parameters for general discovery.
// Numeric parameters arrive as strings on purpose: the domain resolvers
// clamp or ignore malformed values instead of rejecting the request, and an
// absent minRating must stay distinguishable from an explicit 0.
type SearchRequest struct {
	Query     string `query:"q" validate:"max=200"`
	Genre     string `query:"genre" validate:"max=200"`
	Language  string `query:"language" validate:"max=10"`
	MinRating string `query:"minRating" validate:"max=10"`
	Director  string `query:"director" validate:"max=200"`
	Year      string `query:"year" validate:"max=10"`
	SortBy    string `query:"sortBy" validate:"max=20"`
	Order     string `query:"order" validate:"max=10"`
	Page      string `query:"page" validate:"max=10"`
	Limit     string `query:"limit" validate:"max=10"`
}

// ToFilter builds the normalized search predicate.
func (r *SearchRequest) ToFilter() domain.SearchFilter {
	return domain.NewSearchFilter(r.Query, r.Genre, r.Language, r.MinRating, r.Director, r.Year)
}

// ToSort resolves the canonical ordering.
func (r *SearchRequest) ToSort() domain.SortSpec {
	return domain.ResolveSort(r.SortBy, r.Order)
}

// ToPage resolves the clamped pagination window.
func (r *SearchRequest) ToPage() domain.PageSpec {
	return domain.ResolvePage(r.Page, r.Limit)
}

// TrendingRequest represents the query parameters for the trending path.
// Only a limit and an optional genre: the lookback window is service
// configuration and never caller-supplied.
type TrendingRequest struct {
	Genre string `query:"genre" validate:"max=100"`
	Limit int    `query:"limit" validate:"omitempty,min=0"`
}

// ToQuery builds the clamped trending query.
func (r *TrendingRequest) ToQuery() domain.TrendingQuery {
	return domain.NewTrendingQuery(r.Genre, r.Limit)
}

// RecommendRequest represents the query parameters for the recommendation
// path: a comma-separated seed genre set and a limit.
type RecommendRequest struct {
	Genres string `query:"genres" validate:"required,max=500"`
	Limit  int    `query:"limit" validate:"omitempty,min=0"`
}

// ToQuery builds the clamped recommendation query.
func (r *RecommendRequest) ToQuery() domain.RecommendQuery {
	return domain.NewRecommendQuery(r.Genres, r.Limit)
}

// StatusRequest represents the body for a moderation transition.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
