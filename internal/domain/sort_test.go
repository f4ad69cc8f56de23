package domain

import "testing"

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		order     string
		wantField SortField
		wantOrder SortOrder
	}{
		{"views asc", "views", "asc", SortFieldViews, SortOrderAsc},
		{"rating desc", "rating", "desc", SortFieldRating, SortOrderDesc},
		{"date maps to createdAt", "date", "asc", SortFieldCreatedAt, SortOrderAsc},
		{"title", "title", "desc", SortFieldTitle, SortOrderDesc},
		{"order defaults to desc", "views", "", SortFieldViews, SortOrderDesc},
		{"unknown order means desc", "views", "upward", SortFieldViews, SortOrderDesc},
		{"unknown field falls back to createdAt desc", "popularity", "asc", SortFieldCreatedAt, SortOrderAsc},
		{"empty falls back to createdAt desc", "", "", SortFieldCreatedAt, SortOrderDesc},
		{"trending degrades to views desc", "trending", "asc", SortFieldViews, SortOrderDesc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ResolveSort(tt.sortBy, tt.order)
			if spec.Field != tt.wantField || spec.Order != tt.wantOrder {
				t.Errorf("ResolveSort(%q, %q) = {%s %s}, want {%s %s}",
					tt.sortBy, tt.order, spec.Field, spec.Order, tt.wantField, tt.wantOrder)
			}
		})
	}
}
