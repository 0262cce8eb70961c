package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_EmptyListing(t *testing.T) {
	w := Compute(0, 1, 10, 5)

	assert.Equal(t, 1, w.LastPage)
	assert.Equal(t, int64(0), w.Offset)
	assert.False(t, w.HasPrev)
	assert.False(t, w.HasNext)
	assert.Equal(t, []int{1}, w.Pages)
}

func TestCompute_MiddlePage(t *testing.T) {
	// 95 rows at 10 per page: 10 pages, page 3 starts at offset 20
	w := Compute(95, 3, 10, 5)

	assert.Equal(t, 10, w.LastPage)
	assert.Equal(t, 3, w.Page)
	assert.Equal(t, int64(20), w.Offset)
	assert.True(t, w.HasPrev)
	assert.True(t, w.HasNext)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, w.Pages)
}

func TestCompute_ClampsOutOfRangePages(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		wantPage  int
	}{
		{"zero clamps to first", 0, 1},
		{"negative clamps to first", -7, 1},
		{"beyond last clamps to last", 99, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(95, tt.requested, 10, 5)
			assert.Equal(t, tt.wantPage, w.Page)
			assert.GreaterOrEqual(t, w.Offset, int64(0))
		})
	}
}

func TestCompute_WindowClipsAtBoundaries(t *testing.T) {
	t.Run("left edge", func(t *testing.T) {
		w := Compute(100, 1, 10, 5)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, w.Pages)
	})

	t.Run("right edge keeps window length", func(t *testing.T) {
		w := Compute(100, 10, 10, 5)
		assert.Equal(t, []int{6, 7, 8, 9, 10}, w.Pages)
	})

	t.Run("fewer pages than window", func(t *testing.T) {
		w := Compute(25, 2, 10, 5)
		assert.Equal(t, []int{1, 2, 3}, w.Pages)
	})
}

func TestCompute_NeverNegativeOffsetAndLastPageAtLeastOne(t *testing.T) {
	for _, total := range []int64{0, 1, 9, 10, 11, 1000} {
		for _, page := range []int{-5, 0, 1, 7, 500} {
			w := Compute(total, page, 10, 5)
			require.GreaterOrEqual(t, w.Offset, int64(0), "total=%d page=%d", total, page)
			require.GreaterOrEqual(t, w.LastPage, 1, "total=%d page=%d", total, page)
			require.LessOrEqual(t, len(w.Pages), 5)
		}
	}
}
