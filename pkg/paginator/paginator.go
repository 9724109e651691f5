package paginator

import "errors"

var (
	ErrLimitOutOfRange = errors.New("limit out of range")
	ErrNegativeOffset  = errors.New("offset must not be negative")
)

// Validate rejects a negative offset and a limit outside [0, MaxLimit].
func (p PaginateQuery) Validate() error {
	if p.Limit < 0 || p.Limit > MaxLimit {
		return ErrLimitOutOfRange
	}
	if p.Offset < 0 {
		return ErrNegativeOffset
	}
	return nil
}

// Windowed reports whether the query restricts the result to a page.
func (p PaginateQuery) Windowed() bool {
	return p.Limit > 0
}

// CurrentPage returns the 1-indexed page the offset falls on.
func (p Paginator) CurrentPage() int64 {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// TotalPages calculates the number of pages for Total rows.
func (p Paginator) TotalPages() int64 {
	if p.Total == 0 {
		return 0
	}
	if p.Limit <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// HasNextPage checks if rows remain after the current window.
func (p Paginator) HasNextPage() bool {
	return p.Limit > 0 && p.Offset+p.Limit < p.Total
}

// HasPreviousPage checks if the window starts after the first row.
func (p Paginator) HasPreviousPage() bool {
	return p.Offset > 0
}

// ToResponse converts the paginator to a response format with additional calculated fields.
func (p Paginator) ToResponse() PaginatorResponse {
	return PaginatorResponse{
		Total:       p.Total,
		Count:       p.Count,
		Limit:       p.Limit,
		Offset:      p.Offset,
		CurrentPage: p.CurrentPage(),
		TotalPages:  p.TotalPages(),
		HasNext:     p.HasNextPage(),
		HasPrev:     p.HasPreviousPage(),
	}
}
