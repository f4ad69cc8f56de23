package domain

import (
	"strconv"
	"strings"
)

// Pagination bounds. Limit is clamped to [1, MaxLimit].
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageSpec is a bounded pagination window.
type PageSpec struct {
	Page  int
	Limit int
}

// DefaultPageSpec returns page 1 with the default window size.
func DefaultPageSpec() PageSpec {
	return PageSpec{Page: DefaultPage, Limit: DefaultLimit}
}

// ResolvePage maps raw page/limit parameters into a clamped PageSpec.
// Malformed input falls back to the defaults, never an error.
func ResolvePage(page, limit string) PageSpec {
	spec := DefaultPageSpec()

	if s := strings.TrimSpace(page); s != "" {
		if p, err := strconv.Atoi(s); err == nil && p >= 1 {
			spec.Page = p
		}
	}

	if s := strings.TrimSpace(limit); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l >= 1 {
			if l > MaxLimit {
				l = MaxLimit
			}
			spec.Limit = l
		}
	}

	return spec
}

// Offset calculates the number of records to skip.
func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.Limit
}
