package response

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		page           int
		limit          int
		total          int
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{
			name: "first of three pages",
			page: 1, limit: 10, total: 25,
			wantTotalPages: 3, wantHasNext: true, wantHasPrev: false,
		},
		{
			name: "last partial page",
			page: 3, limit: 10, total: 25,
			wantTotalPages: 3, wantHasNext: false, wantHasPrev: true,
		},
		{
			name: "exact division",
			page: 2, limit: 10, total: 20,
			wantTotalPages: 2, wantHasNext: false, wantHasPrev: true,
		},
		{
			name: "no rows",
			page: 1, limit: 10, total: 0,
			wantTotalPages: 0, wantHasNext: false, wantHasPrev: false,
		},
		{
			name: "page beyond total pages",
			page: 9, limit: 10, total: 25,
			wantTotalPages: 3, wantHasNext: false, wantHasPrev: true,
		},
		{
			name: "single row single page",
			page: 1, limit: 12, total: 1,
			wantTotalPages: 1, wantHasNext: false, wantHasPrev: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPagination(tt.page, tt.limit, tt.total)
			require.Equal(t, tt.page, p.Page)
			require.Equal(t, tt.limit, p.Limit)
			require.Equal(t, tt.total, p.Total)
			require.Equal(t, tt.wantTotalPages, p.TotalPages)
			require.Equal(t, tt.wantHasNext, p.HasNext)
			require.Equal(t, tt.wantHasPrev, p.HasPrev)
		})
	}
}

func TestNewPaginationInvariants(t *testing.T) {
	t.Parallel()

	// ceil(total/limit), hasNext and hasPrev hold across a grid of inputs.
	for page := 1; page <= 7; page++ {
		for limit := 1; limit <= 13; limit += 3 {
			for total := 0; total <= 40; total += 7 {
				p := NewPagination(page, limit, total)

				wantPages := (total + limit - 1) / limit
				require.Equal(t, wantPages, p.TotalPages,
					"page=%d limit=%d total=%d", page, limit, total)
				require.Equal(t, page*limit < total, p.HasNext)
				require.Equal(t, page > 1, p.HasPrev)
			}
		}
	}
}
