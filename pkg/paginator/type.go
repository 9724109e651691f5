package paginator

// PaginateQuery contains the limit/offset window of a request.
type PaginateQuery struct {
	Limit  int64 `json:"limit" form:"limit"`   // 0 returns every row
	Offset int64 `json:"offset" form:"offset"` // Rows skipped before the window
}

// Paginator contains pagination metadata for a query result.
type Paginator struct {
	Total  int64 // Total number of rows across all pages
	Count  int64 // Number of rows in the current page
	Limit  int64
	Offset int64
}

// PaginatorResponse is the response format for pagination metadata.
type PaginatorResponse struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	Limit       int64 `json:"limit"`
	Offset      int64 `json:"offset"`
	CurrentPage int64 `json:"current_page"`
	TotalPages  int64 `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}
