package pagination

import (
	"fmt"
	"math"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Meta describes one page of a result set.
type Meta struct {
	Page            int    `json:"page"`
	PageSize        int    `json:"page_size"`
	TotalCount      int64  `json:"total_count"`
	TotalPages      int    `json:"total_pages"`
	HasPreviousPage bool   `json:"has_previous_page"`
	HasNextPage     bool   `json:"has_next_page"`
	Showing         string `json:"showing"`
}

// Normalize replaces out-of-range values with defaults instead of failing.
func Normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset returns the row offset of page. Expects normalized input.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// NewMeta builds the derived view fields for a page.
func NewMeta(page, pageSize int, total int64) Meta {
	page, pageSize = Normalize(page, pageSize)

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	showing := fmt.Sprintf("%d-%d of %d", Offset(page, pageSize)+1, min(page*pageSize, int(total)), total)
	if total == 0 || Offset(page, pageSize) >= int(total) {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return Meta{
		Page:            page,
		PageSize:        pageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasPreviousPage: page > 1,
		HasNextPage:     page < totalPages,
		Showing:         showing,
	}
}
