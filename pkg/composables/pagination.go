package composables

import (
	"net/http"
)

type PaginationParams struct {
	Page    int
	PerPage int
}

// UsePaginated reads page and limit from the query. Pages are 1-based and
// limit is clamped to [1, maxSize].
func UsePaginated(r *http.Request, defaultSize, maxSize int) PaginationParams {
	page := QueryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := QueryInt(r, "limit", defaultSize)
	if perPage < 1 {
		perPage = defaultSize
	}
	if maxSize > 0 && perPage > maxSize {
		perPage = maxSize
	}
	return PaginationParams{Page: page, PerPage: perPage}
}
