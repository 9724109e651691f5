package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateQuery_Validate(t *testing.T) {
	tests := []struct {
		name string
		in   PaginateQuery
		want error
	}{
		{name: "zero limit means all rows", in: PaginateQuery{Limit: 0, Offset: 10}},
		{name: "largest page", in: PaginateQuery{Limit: MaxLimit}},
		{name: "limit over max", in: PaginateQuery{Limit: MaxLimit + 1}, want: ErrLimitOutOfRange},
		{name: "negative limit", in: PaginateQuery{Limit: -1}, want: ErrLimitOutOfRange},
		{name: "negative offset", in: PaginateQuery{Limit: 10, Offset: -5}, want: ErrNegativeOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPaginator_ToResponse(t *testing.T) {
	resp := Paginator{Total: 25, Count: 10, Limit: 10, Offset: 10}.ToResponse()

	assert.Equal(t, int64(2), resp.CurrentPage)
	assert.Equal(t, int64(3), resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)

	all := Paginator{Total: 25, Count: 25}.ToResponse()
	assert.Equal(t, int64(1), all.TotalPages)
	assert.False(t, all.HasNext)
}
