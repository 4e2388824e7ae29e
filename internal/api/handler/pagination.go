package handler

import (
	"strconv"
)

// pagination is the envelope shared by every paginated listing. PagePrev and
// PageNext are plain page±1 with no bounds clamping; the client decides which
// links to render.
type pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
	PagePrev int `json:"page_prev"`
	PageNext int `json:"page_next"`
}

func paginate(page, pageSize, total int) pagination {
	return pagination{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		PagePrev: page - 1,
		PageNext: page + 1,
	}
}

// parsePage turns a path segment into a page number, defaulting to 1 when the
// segment is absent or not a positive integer.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
