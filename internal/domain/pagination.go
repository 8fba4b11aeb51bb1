package domain

// PaginationParams holds offset-based pagination parameters for list queries.
// Page is 0-based: the first page is page 0.
type PaginationParams struct {
	Page int
	Size int
}

// Offset returns the row offset for the current page (Page * Size).
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return p.Page * p.Size
}
