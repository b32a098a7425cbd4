package model

// PagedResult holds one page of a paginated query along with the
// caller-supplied page coordinates and the collection's total size at
// query time.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// NewPagedResult builds a PagedResult, deriving TotalPages as
// ceil(totalCount / pageSize).
func NewPagedResult[T any](items []T, pageNumber, pageSize, totalCount int) PagedResult[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return PagedResult[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
