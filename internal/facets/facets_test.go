package facets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuflow/pkg/listview"
)

func TestCompiler_Compile(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	facet, err := c.Compile(Definition{
		Table: "lignes",
		Name:  "weightFilter",
		Field: "quantity",
		Buckets: []BucketDef{
			{Name: "light", Expr: "value < 10.0"},
			{Name: "heavy", Expr: "value >= 10.0"},
		},
	})
	require.NoError(t, err)
	require.Len(t, facet.Buckets, 2)

	assert.True(t, facet.Buckets[0].Contains(5))
	assert.False(t, facet.Buckets[0].Contains(10))
	assert.True(t, facet.Buckets[1].Contains(10))
}

func TestCompiler_CompileErrors(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	tests := []struct {
		name string
		expr string
	}{
		{"syntax error", "value >"},
		{"unknown variable", "quantity > 5.0"},
		{"non-bool result", "value + 1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compile(Definition{
				Name:    "f",
				Field:   "quantity",
				Buckets: []BucketDef{{Name: "b", Expr: tt.expr}},
			})
			assert.Error(t, err)
		})
	}
}

func TestCompiler_CompileAllGroupsByTable(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	byTable, err := c.CompileAll([]Definition{
		{Table: "lignes", Name: "a", Field: "quantity", Buckets: []BucketDef{{Name: "x", Expr: "value > 1.0"}}},
		{Table: "lignes", Name: "b", Field: "priceHT", Buckets: []BucketDef{{Name: "y", Expr: "value > 2.0"}}},
		{Table: "documents", Name: "c", Field: "status", Buckets: []BucketDef{{Name: "z", Expr: "value == 0.0"}}},
	})
	require.NoError(t, err)
	assert.Len(t, byTable["lignes"], 2)
	assert.Len(t, byTable["documents"], 1)
}

func TestCompiledFacetInsideTable(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	facet, err := c.Compile(Definition{
		Name:  "quantityFilter",
		Field: "quantity",
		Buckets: []BucketDef{
			{Name: "high", Expr: "value > 20.0"},
		},
	})
	require.NoError(t, err)

	type line struct {
		key      string
		quantity float64
	}
	table := listview.NewTable(func(l line) string { return l.key }).
		Number("quantity", func(l line) float64 { return l.quantity }).
		Facet(facet)

	rows := []line{{"a", 25}, {"b", 20}, {"c", 21}}
	got := table.Filter(rows, listview.Criteria{Facets: map[string]string{"quantityFilter": "high"}})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].key)
	assert.Equal(t, "c", got[1].key)
}
