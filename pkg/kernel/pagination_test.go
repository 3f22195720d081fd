package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationOptions_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PaginationOptions
		want PaginationOptions
	}{
		{"zero value", PaginationOptions{}, PaginationOptions{Page: 1, PageSize: DefaultPageSize}},
		{"too large", PaginationOptions{Page: 3, PageSize: 500}, PaginationOptions{Page: 3, PageSize: MaxPageSize}},
		{"valid", PaginationOptions{Page: 2, PageSize: 10}, PaginationOptions{Page: 2, PageSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]string{"a", "b"}, PaginationOptions{Page: 2, PageSize: 2}, 5)

	assert.Equal(t, 3, p.Page.Pages)
	assert.Equal(t, 2, p.Page.Number)
	assert.False(t, p.Empty)
	assert.Equal(t, 2, PaginationOptions{Page: 2, PageSize: 2}.Offset())

	empty := NewPaginated[string](nil, PaginationOptions{}, 0)
	assert.True(t, empty.Empty)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Page.Pages)
}

func TestMapPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, PaginationOptions{}, 2)
	out := MapPaginated(p, func(i int) int { return i * 10 })

	assert.Equal(t, []int{10, 20}, out.Items)
	assert.Equal(t, p.Page, out.Page)
}
