package domain

// ResultEnvelope is the stable paginated shape shared by every list-returning
// read path: general search, genre browse, trending, and recommendations.
type ResultEnvelope struct {
	Items      []*Video `json:"items"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
	HasMore    bool     `json:"has_more"`
}

// NewResultEnvelope shapes a raw (items, total) pair into the envelope.
// TotalPages is ceil(total/limit); a total of 0 yields 0 pages and no more.
func NewResultEnvelope(items []*Video, total int64, page PageSpec) *ResultEnvelope {
	if items == nil {
		items = []*Video{}
	}

	totalPages := int(total) / page.Limit
	if int(total)%page.Limit > 0 {
		totalPages++
	}

	return &ResultEnvelope{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages,
		HasMore:    page.Page < totalPages,
	}
}
