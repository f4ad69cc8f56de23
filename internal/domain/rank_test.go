package domain

import (
	"sort"
	"testing"
	"time"
)

func TestNewTrendingQuery_ClampsLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultRankLimit},
		{-5, DefaultRankLimit},
		{1, 1},
		{50, 50},
		{200, MaxRankLimit},
	}

	for _, tt := range tests {
		if got := NewTrendingQuery("", tt.limit).Limit; got != tt.want {
			t.Errorf("NewTrendingQuery limit %d = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestNewRecommendQuery_SplitsGenres(t *testing.T) {
	q := NewRecommendQuery("Sci-Fi, Action,,", 0)
	if len(q.Genres) != 2 || q.Genres[0] != "Sci-Fi" || q.Genres[1] != "Action" {
		t.Errorf("Genres = %v, want [Sci-Fi Action]", q.Genres)
	}
	if q.Limit != DefaultRankLimit {
		t.Errorf("Limit = %d, want default %d", q.Limit, DefaultRankLimit)
	}
}

func TestInTrendingWindow(t *testing.T) {
	now := time.Now().UTC()
	window := DefaultTrendingWindow

	outside := &Video{CreatedAt: now.AddDate(0, 0, -31)}
	if InTrendingWindow(outside, now, window) {
		t.Error("31-day-old video must fall outside the 30-day window")
	}

	inside := &Video{CreatedAt: now.AddDate(0, 0, -29)}
	if !InTrendingWindow(inside, now, window) {
		t.Error("29-day-old video must fall inside the 30-day window")
	}
}

func TestTrendingLess(t *testing.T) {
	now := time.Now().UTC()

	// A 31-day-old record is excluded by the window even with the most
	// views; inside the window, more views rank first regardless of age.
	older := &Video{ID: "a", Views: 100, CreatedAt: now.AddDate(0, 0, -29)}
	newer := &Video{ID: "b", Views: 500, CreatedAt: now.AddDate(0, 0, -10)}

	if !TrendingLess(newer, older) {
		t.Error("more views must rank first inside the window")
	}

	// View ties favor the newer record.
	tied := &Video{ID: "c", Views: 100, CreatedAt: now.AddDate(0, 0, -5)}
	if !TrendingLess(tied, older) {
		t.Error("view tie must favor the newer record")
	}
}

func TestGenreOverlap(t *testing.T) {
	v := &Video{Genres: []string{"Sci-Fi", "Thriller", "Action"}}

	tests := []struct {
		seeds []string
		want  int
	}{
		{[]string{"Sci-Fi"}, 1},
		{[]string{"sci-fi", "ACTION"}, 2},
		{[]string{"Comedy"}, 0},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := GenreOverlap(tt.seeds, v); got != tt.want {
			t.Errorf("GenreOverlap(%v) = %d, want %d", tt.seeds, got, tt.want)
		}
	}
}

func TestRecommendLess_Ordering(t *testing.T) {
	seeds := []string{"Sci-Fi", "Thriller"}

	double := &Video{ID: "a", Genres: []string{"Sci-Fi", "Thriller"}, Rating: 6.0, Views: 10}
	single := &Video{ID: "b", Genres: []string{"Sci-Fi"}, Rating: 9.5, Views: 999}

	if !RecommendLess(seeds, double, single) {
		t.Error("two-genre overlap must outrank one-genre overlap regardless of rating")
	}

	// Two single-match records are ordered by rating, not genre count.
	low := &Video{ID: "c", Genres: []string{"Sci-Fi", "Comedy"}, Rating: 7.0, Views: 10}
	high := &Video{ID: "d", Genres: []string{"Sci-Fi"}, Rating: 8.0, Views: 5}
	if !RecommendLess(seeds, high, low) {
		t.Error("equal overlap must fall through to rating desc")
	}

	// Rating ties fall through to views, then id.
	viewy := &Video{ID: "e", Genres: []string{"Sci-Fi"}, Rating: 8.0, Views: 100}
	if !RecommendLess(seeds, viewy, high) {
		t.Error("rating tie must fall through to views desc")
	}
}

func TestRecommendLess_StableSort(t *testing.T) {
	seeds := []string{"Sci-Fi"}
	videos := []*Video{
		{ID: "c", Genres: []string{"Sci-Fi"}, Rating: 8.0, Views: 10},
		{ID: "a", Genres: []string{"Sci-Fi"}, Rating: 8.0, Views: 10},
		{ID: "b", Genres: []string{"Sci-Fi"}, Rating: 8.0, Views: 10},
	}

	// Full ties resolve on id asc, so two identical sorts agree.
	sort.Slice(videos, func(i, j int) bool { return RecommendLess(seeds, videos[i], videos[j]) })

	want := []string{"a", "b", "c"}
	for i, v := range videos {
		if v.ID != want[i] {
			t.Fatalf("order = %v, want %v", ids(videos), want)
		}
	}
}

func ids(videos []*Video) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.ID
	}
	return out
}
