package kernel

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationOptions is the page request accepted by every list operation
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps page and size into their valid ranges
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is the SQL offset of the first row of the page
func (p PaginationOptions) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Page describes where a result sits in the full set
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated is a page of items
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a page from items and the total row count
func NewPaginated[T any](items []T, opts PaginationOptions, total int) *Paginated[T] {
	n := opts.Normalize()
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number: n.Page,
			Size:   n.PageSize,
			Total:  total,
			Pages:  (total + n.PageSize - 1) / n.PageSize,
		},
		Empty: len(items) == 0,
	}
}

// MapPaginated converts the items of a page, keeping the page metadata
func MapPaginated[T, R any](p *Paginated[T], fn func(T) R) *Paginated[R] {
	out := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return &Paginated[R]{Items: out, Page: p.Page, Empty: p.Empty}
}
