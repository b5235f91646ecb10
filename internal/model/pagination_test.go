package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalItems int
		want       Pagination
	}{
		{
			name: "partial last page",
			page: 1, limit: 10, totalItems: 15,
			want: Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 15, ItemsPerPage: 10},
		},
		{
			name: "exact multiple",
			page: 2, limit: 10, totalItems: 20,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 20, ItemsPerPage: 10},
		},
		{
			name: "empty result set",
			page: 1, limit: 10, totalItems: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 10},
		},
		{
			name: "single item",
			page: 1, limit: 20, totalItems: 1,
			want: Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 20},
		},
		{
			name: "page past the end keeps requested page",
			page: 9, limit: 10, totalItems: 15,
			want: Pagination{CurrentPage: 9, TotalPages: 2, TotalItems: 15, ItemsPerPage: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.page, tt.limit, tt.totalItems)
			assert.Equal(t, tt.want, got)
		})
	}
}
