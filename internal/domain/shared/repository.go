package shared

// Filter describes common listing parameters for repository queries
type Filter struct {
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
	OrderBy string            `json:"order_by"`
	Desc    bool              `json:"desc"`
	Search  string            `json:"search"`
	Fields  map[string]string `json:"fields"`
}

// DefaultFilter returns a filter with sane pagination defaults
func DefaultFilter() Filter {
	return Filter{
		Limit:  50,
		Offset: 0,
	}
}

// Paginated wraps a page of results with its total count
type Paginated[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewPaginated builds a paginated result set
func NewPaginated[T any](items []T, total int64, filter Filter) Paginated[T] {
	return Paginated[T]{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
}
