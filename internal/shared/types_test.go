package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		in         Pagination
		want       Pagination
		wantOffset int
	}{
		{in: Pagination{}, want: Pagination{Page: 1, Limit: DefaultPageSize}, wantOffset: 0},
		{in: Pagination{Page: 3, Limit: 10}, want: Pagination{Page: 3, Limit: 10}, wantOffset: 20},
		{in: Pagination{Page: -1, Limit: 1000}, want: Pagination{Page: 1, Limit: MaxPageSize}, wantOffset: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Normalize())
		assert.Equal(t, tt.wantOffset, tt.in.Offset())
	}
}
