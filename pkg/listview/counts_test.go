package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacetCounts(t *testing.T) {
	type row struct {
		key string
		qty float64
	}
	table := NewTable(func(r row) string { return r.key }).
		Number("quantity", func(r row) float64 { return r.qty }).
		Facet(QuantityFacet())

	rows := []row{
		{"a", 1}, {"b", 3}, // low
		{"c", 5}, {"d", 19}, // medium
		{"e", 25}, // high
	}

	counts := table.FacetCounts(rows)
	assert.Equal(t, map[string]int{"low": 2, "medium": 2, "high": 1}, counts["quantityFilter"])
}

func TestFacetCounts_NoFacets(t *testing.T) {
	type row struct{ key string }
	table := NewTable(func(r row) string { return r.key })
	assert.Nil(t, table.FacetCounts([]row{{"a"}}))
}
