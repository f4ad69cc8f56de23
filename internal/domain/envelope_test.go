package domain

import "testing"

func TestNewResultEnvelope_Shape(t *testing.T) {
	tests := []struct {
		name       string
		items      int
		total      int64
		page       int
		limit      int
		totalPages int
		hasMore    bool
	}{
		{name: "empty result", items: 0, total: 0, page: 1, limit: 20, totalPages: 0, hasMore: false},
		{name: "single partial page", items: 5, total: 5, page: 1, limit: 20, totalPages: 1, hasMore: false},
		{name: "exact multiple", items: 20, total: 40, page: 1, limit: 20, totalPages: 2, hasMore: true},
		{name: "exact multiple last page", items: 20, total: 40, page: 2, limit: 20, totalPages: 2, hasMore: false},
		{name: "ceil division", items: 20, total: 45, page: 2, limit: 20, totalPages: 3, hasMore: true},
		{name: "last page", items: 5, total: 45, page: 3, limit: 20, totalPages: 3, hasMore: false},
		{name: "page beyond end", items: 0, total: 45, page: 9, limit: 20, totalPages: 3, hasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]*Video, tt.items)
			env := NewResultEnvelope(items, tt.total, PageSpec{Page: tt.page, Limit: tt.limit})

			if env.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", env.TotalPages, tt.totalPages)
			}
			if env.HasMore != tt.hasMore {
				t.Errorf("HasMore = %v, want %v", env.HasMore, tt.hasMore)
			}
			if env.Total != tt.total || env.Page != tt.page || env.Limit != tt.limit {
				t.Errorf("echoed pagination = (%d, %d, %d)", env.Total, env.Page, env.Limit)
			}
		})
	}
}

func TestNewResultEnvelope_NilItems(t *testing.T) {
	env := NewResultEnvelope(nil, 0, DefaultPageSpec())
	if env.Items == nil {
		t.Fatal("Items must be an empty slice, not nil")
	}
	if len(env.Items) != 0 {
		t.Fatalf("Items = %d, want 0", len(env.Items))
	}
}
