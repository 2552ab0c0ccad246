package domain

// Defaults and bounds applied by NewPaginationParams.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams carries page/limit values from the HTTP layer to the
// service layer, which pages an already filtered and sorted slice.
// Page is 1-indexed and unbounded; Limit is capped at MaxPageLimit.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil or non-positive values fall back to page=1, limit=DefaultPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Window returns the half-open bounds [lo, hi) of this page within a
// collection of n items. Pages past the end yield lo == hi == n.
// The page offset is never multiplied out, so any Page value is safe.
func (p PaginationParams) Window(n int) (lo, hi int) {
	limit := p.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	skip := p.Page - 1
	if skip < 0 {
		skip = 0
	}
	if skip > n/limit {
		return n, n
	}
	lo = min(skip*limit, n)
	return lo, min(lo+limit, n)
}
