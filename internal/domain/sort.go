package domain

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortField represents the field to sort by.
type SortField string

const (
	SortFieldViews     SortField = "views"
	SortFieldRating    SortField = "rating"
	SortFieldCreatedAt SortField = "createdAt"
	SortFieldTitle     SortField = "title"
)

// SortSpec is a canonical ordering: a primary key and direction. Every spec
// implicitly carries (id, asc) as the final tie-break so paginated results
// stay stable when primary values collide.
type SortSpec struct {
	Field SortField
	Order SortOrder
}

// DefaultSort orders by creation time, newest first.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortFieldCreatedAt, Order: SortOrderDesc}
}

// ResolveSort maps the public sortBy/order parameters onto a SortSpec.
//
//   - "date" maps to createdAt.
//   - "trending" through this general path degrades to views desc; the true
//     windowed semantics live in the trending ranker, which is a separate
//     read path.
//   - Unknown sortBy values fall back to createdAt desc.
//   - Any order other than "asc" means desc.
func ResolveSort(sortBy, order string) SortSpec {
	// The degraded trending sort is always views desc, regardless of order.
	if sortBy == "trending" {
		return SortSpec{Field: SortFieldViews, Order: SortOrderDesc}
	}

	spec := DefaultSort()

	switch sortBy {
	case "views":
		spec.Field = SortFieldViews
	case "rating":
		spec.Field = SortFieldRating
	case "date":
		spec.Field = SortFieldCreatedAt
	case "title":
		spec.Field = SortFieldTitle
	}

	if order == string(SortOrderAsc) {
		spec.Order = SortOrderAsc
	}

	return spec
}
