package domain

import (
	"strconv"
	"strings"
)

// SearchFilter is a normalized predicate over the video catalog, built fresh
// per request from raw query parameters. Absent fields add no clause.
//
// MinRating is a pointer so that an explicit 0 stays distinguishable from
// "no rating filter"; same for Year.
type SearchFilter struct {
	Query     string
	Genres    []string
	Language  string
	MinRating *float64
	Director  string
	Year      *int
}

// NewSearchFilter builds a SearchFilter from loosely-typed query parameters.
// Malformed numeric input is ignored rather than rejected; numeric bounds are
// clamped. The visibility gate (approved + public) is not part of the filter
// value - repositories conjoin it on every list path.
func NewSearchFilter(q, genre, language, minRating, director, year string) SearchFilter {
	f := SearchFilter{
		Query:    strings.TrimSpace(q),
		Language: strings.TrimSpace(language),
		Director: strings.TrimSpace(director),
		Genres:   splitGenres(genre),
	}

	if s := strings.TrimSpace(minRating); s != "" {
		if r, err := strconv.ParseFloat(s, 64); err == nil {
			if r < 0 {
				r = 0
			}
			if r > 10 {
				r = 10
			}
			f.MinRating = &r
		}
	}

	if s := strings.TrimSpace(year); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			f.Year = &y
		}
	}

	return f
}

// GenreFilter builds a filter scoped to a single genre, used by the
// genre-browse path.
func GenreFilter(genre string) SearchFilter {
	return SearchFilter{Genres: splitGenres(genre)}
}

// IsEmpty reports whether the filter adds no clauses beyond the visibility
// gate.
func (f SearchFilter) IsEmpty() bool {
	return f.Query == "" && len(f.Genres) == 0 && f.Language == "" &&
		f.MinRating == nil && f.Director == "" && f.Year == nil
}

// Matches reports whether a video satisfies every supplied predicate plus the
// visibility gate. Repositories translate the same semantics to SQL; this
// in-memory form keeps the contract testable without a live store.
func (f SearchFilter) Matches(v *Video) bool {
	if v == nil || !v.Visible() {
		return false
	}

	if f.Query != "" && !matchesText(v, f.Query) {
		return false
	}

	// Genre set is OR-matched: one intersecting genre qualifies.
	if len(f.Genres) > 0 {
		matched := false
		for _, g := range f.Genres {
			if v.HasGenre(g) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.Language != "" && !strings.EqualFold(v.Language, f.Language) {
		return false
	}

	if f.MinRating != nil && v.Rating < *f.MinRating {
		return false
	}

	if f.Director != "" && !containsFold(v.Director, f.Director) {
		return false
	}

	if f.Year != nil && v.ReleaseYear != *f.Year {
		return false
	}

	return true
}

// matchesText is the OR-across-fields text test: a case-insensitive
// substring match against title, description, or any tag.
func matchesText(v *Video, q string) bool {
	if containsFold(v.Title, q) || containsFold(v.Description, q) {
		return true
	}
	for _, tag := range v.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// splitGenres splits a comma-separated genre parameter, trimming tokens and
// dropping empties.
func splitGenres(genre string) []string {
	if strings.TrimSpace(genre) == "" {
		return nil
	}

	parts := strings.Split(genre, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		return nil
	}

	return genres
}
