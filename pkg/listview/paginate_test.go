package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{key: fmt.Sprintf("k%02d", i)}
	}
	return out
}

func TestPaginate_Basics(t *testing.T) {
	rows := makeRows(23)

	tests := []struct {
		name      string
		state     PageState
		wantLen   int
		wantPage  int
		wantTotal int
		wantFirst string
	}{
		{"page 1 of 3", PageState{Current: 1, Size: 10}, 10, 1, 3, "k00"},
		{"page 2 of 3", PageState{Current: 2, Size: 10}, 10, 2, 3, "k10"},
		{"last partial page", PageState{Current: 3, Size: 10}, 3, 3, 3, "k20"},
		{"page past the end clamps to last", PageState{Current: 9, Size: 10}, 3, 3, 3, "k20"},
		{"page zero clamps to first", PageState{Current: 0, Size: 10}, 10, 1, 3, "k00"},
		{"zero size falls back to default", PageState{Current: 1, Size: 0}, 10, 1, 3, "k00"},
		{"negative size falls back to default", PageState{Current: 1, Size: -5}, 10, 1, 3, "k00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(rows, tt.state)
			assert.Len(t, page.Items, tt.wantLen)
			assert.Equal(t, tt.wantPage, page.Current)
			assert.Equal(t, tt.wantTotal, page.TotalPages)
			assert.Equal(t, 23, page.TotalItems)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page.Items[0].key)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]row{}, PageState{Current: 4, Size: 10})
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Current)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
}

func TestPaginate_Coverage(t *testing.T) {
	// Concatenating all pages reproduces the collection exactly once each.
	for _, n := range []int{0, 1, 9, 10, 11, 23, 100} {
		for _, size := range []int{1, 3, 10, 25} {
			rows := makeRows(n)
			first := Paginate(rows, PageState{Current: 1, Size: size})

			var seen []string
			for p := 1; p <= first.TotalPages; p++ {
				page := Paginate(rows, PageState{Current: p, Size: size})
				seen = append(seen, keysOf(page.Items)...)
			}

			if n == 0 {
				assert.Empty(t, seen)
				continue
			}
			require.Equal(t, keysOf(rows), seen, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginate_ClampAfterShrink(t *testing.T) {
	// A view sitting on page 3 whose filter shrinks the set to 12 rows lands
	// on page 2, never an out-of-range empty page.
	rows := makeRows(12)
	page := Paginate(rows, PageState{Current: 3, Size: 10})
	assert.Equal(t, 2, page.Current)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)
}

func TestPageState_WithSize(t *testing.T) {
	st := PageState{Current: 7, Size: 10}
	assert.Equal(t, PageState{Current: 1, Size: 25}, st.WithSize(25))
}
