package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowKey(r row) string { return r.key }

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection(rowKey)
	r := row{key: "a"}

	assert.False(t, sel.IsSelected(r))
	sel.Toggle(r)
	assert.True(t, sel.IsSelected(r))
	assert.Equal(t, 1, sel.Count())

	// Keyed by key, not identity: a rebuilt value with the same key matches.
	assert.True(t, sel.IsSelected(row{key: "a", title: "refetched"}))

	sel.Toggle(r)
	assert.False(t, sel.IsSelected(r))
	assert.Equal(t, 0, sel.Count())
}

func TestSelection_TogglePageAccumulates(t *testing.T) {
	// 23 rows, page size 10: selecting all of page 1 then all of page 2
	// yields 20 selected.
	rows := makeRows(23)
	sel := NewSelection(rowKey)

	page1 := Paginate(rows, PageState{Current: 1, Size: 10})
	sel.TogglePage(page1.Items)
	assert.Equal(t, 10, sel.Count())
	assert.True(t, sel.PageFullySelected(page1.Items))

	page2 := Paginate(rows, PageState{Current: 2, Size: 10})
	sel.TogglePage(page2.Items)
	assert.Equal(t, 20, sel.Count())
	assert.True(t, sel.PageFullySelected(page2.Items))
	// Page 1 stays selected.
	assert.True(t, sel.PageFullySelected(page1.Items))
}

func TestSelection_TogglePageDeselectsFullPage(t *testing.T) {
	rows := makeRows(23)
	sel := NewSelection(rowKey)
	page := Paginate(rows, PageState{Current: 1, Size: 10})

	sel.TogglePage(page.Items)
	require.Equal(t, 10, sel.Count())

	sel.TogglePage(page.Items)
	assert.Equal(t, 0, sel.Count())
}

func TestSelection_TogglePagePartialSelectsRest(t *testing.T) {
	rows := makeRows(5)
	sel := NewSelection(rowKey)
	sel.Toggle(rows[1])

	// Page not fully selected: toggling selects the whole page.
	sel.TogglePage(rows)
	assert.Equal(t, 5, sel.Count())
}

func TestSelection_PageStates(t *testing.T) {
	rows := makeRows(4)
	sel := NewSelection(rowKey)

	assert.False(t, sel.PageFullySelected(rows))
	assert.False(t, sel.PartialSelection(rows))
	// Empty page is never "fully selected".
	assert.False(t, sel.PageFullySelected(nil))

	sel.Toggle(rows[0])
	assert.False(t, sel.PageFullySelected(rows))
	assert.True(t, sel.PartialSelection(rows))

	for _, r := range rows[1:] {
		sel.Toggle(r)
	}
	assert.True(t, sel.PageFullySelected(rows))
	assert.False(t, sel.PartialSelection(rows))
}

func TestSelection_SurvivesFilterAndSort(t *testing.T) {
	table := testTable()
	rows := sampleRows()
	sel := NewSelection(rowKey)

	sel.Toggle(rows[0]) // l1

	filtered := table.Filter(rows, Criteria{Facets: map[string]string{"quantityFilter": "high"}})
	sorted := table.Sort(filtered, SortSpec{Field: "priceHT", Direction: Desc})
	sel.Sync(rows) // source unchanged

	assert.True(t, sel.IsSelected(row{key: "l1"}))
	assert.Equal(t, []string{"l1"}, keysOf(sel.SelectedItems(sorted)))
}

func TestSelection_SyncDropsVanishedKeys(t *testing.T) {
	rows := sampleRows()
	sel := NewSelection(rowKey)
	sel.Toggle(rows[0]) // l1
	sel.Toggle(rows[1]) // l2

	// l1 was deleted server-side; the refetched source no longer carries it.
	refetched := rows[1:]
	sel.Sync(refetched)

	assert.Equal(t, 1, sel.Count())
	assert.False(t, sel.IsSelected(row{key: "l1"}))
	assert.Equal(t, []string{"l2"}, keysOf(sel.SelectedItems(refetched)))
}

func TestSelection_Clear(t *testing.T) {
	rows := makeRows(3)
	sel := NewSelection(rowKey)
	sel.TogglePage(rows)
	require.Equal(t, 3, sel.Count())

	sel.Clear()
	assert.Equal(t, 0, sel.Count())
	assert.Empty(t, sel.Keys())
}
