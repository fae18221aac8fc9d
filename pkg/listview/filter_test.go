package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	key      string
	title    string
	article  string
	quantity float64
	price    float64
}

func testTable() *Table[row] {
	return NewTable(func(r row) string { return r.key }).
		Text("title", func(r row) string { return r.title }).
		Text("article", func(r row) string { return r.article }).
		Number("quantity", func(r row) float64 { return r.quantity }).
		Number("priceHT", func(r row) float64 { return r.price }).
		Facet(QuantityFacet()).
		Facet(Facet{
			Name:  "priceFilter",
			Field: "priceHT",
			Buckets: []Bucket{
				{Name: "cheap", Lt: Ptr(100)},
				{Name: "expensive", Gte: Ptr(100)},
			},
		})
}

func sampleRows() []row {
	return []row{
		{key: "l1", title: "Cement bags", article: "CEM-01", quantity: 25, price: 90},
		{key: "l2", title: "Steel rods", article: "STL-02", quantity: 3, price: 150},
		{key: "l3", title: "Paint bucket", article: "PNT-03", quantity: 30, price: 40},
		{key: "l4", title: "Sand", article: "SND-04", quantity: 21, price: 15},
		{key: "l5", title: "Gravel", article: "GRV-05", quantity: 12, price: 60},
		{key: "l6", title: "Cement mixer", article: "MIX-06", quantity: 100, price: 900},
		{key: "l7", title: "Nails", article: "NLS-07", quantity: 7, price: 5},
	}
}

func keysOf(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.key
	}
	return out
}

func TestFilter_Search(t *testing.T) {
	table := testTable()
	rows := sampleRows()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"empty search returns all", Criteria{}, []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}},
		{"all fields case-insensitive", Criteria{Search: "CEMENT"}, []string{"l1", "l6"}},
		{"all fields matches article", Criteria{Search: "stl"}, []string{"l2"}},
		{"explicit all field", Criteria{Search: "cement", SearchField: SearchAll}, []string{"l1", "l6"}},
		{"single field", Criteria{Search: "cem", SearchField: "article"}, []string{"l1"}},
		{"single field no match in other field", Criteria{Search: "bags", SearchField: "article"}, []string{}},
		{"numeric field matches stringified value", Criteria{Search: "25", SearchField: "quantity"}, []string{"l1"}},
		{"numeric field substring", Criteria{Search: "90", SearchField: "priceHT"}, []string{"l1", "l6"}},
		{"unknown field matches nothing", Criteria{Search: "cement", SearchField: "nope"}, []string{}},
		{"whitespace-only search is a no-op", Criteria{Search: "   "}, []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Filter(rows, tt.criteria)
			assert.Equal(t, tt.want, keysOf(got))
		})
	}
}

func TestFilter_Facets(t *testing.T) {
	table := testTable()
	rows := sampleRows()

	tests := []struct {
		name   string
		facets map[string]string
		want   []string
	}{
		{"high quantity strictly above 20", map[string]string{"quantityFilter": "high"}, []string{"l1", "l3", "l4", "l6"}},
		{"low quantity", map[string]string{"quantityFilter": "low"}, []string{"l2"}},
		{"medium quantity inclusive-exclusive", map[string]string{"quantityFilter": "medium"}, []string{"l5", "l7"}},
		{"any bypasses", map[string]string{"quantityFilter": "any"}, []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}},
		{"empty bucket bypasses", map[string]string{"quantityFilter": ""}, []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}},
		{"unknown bucket bypasses", map[string]string{"quantityFilter": "bogus"}, []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}},
		{"unknown facet bypasses", map[string]string{"weightFilter": "high"}, []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}},
		{"facets are ANDed", map[string]string{"quantityFilter": "high", "priceFilter": "cheap"}, []string{"l1", "l3", "l4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Filter(rows, Criteria{Facets: tt.facets})
			assert.Equal(t, tt.want, keysOf(got))
		})
	}
}

func TestFilter_FacetIndependentOfSearch(t *testing.T) {
	// Four rows have quantity > 20 (25, 30, 21, 100); the facet result size
	// does not depend on search text ordering of evaluation.
	table := testTable()
	rows := sampleRows()

	got := table.Filter(rows, Criteria{Facets: map[string]string{"quantityFilter": "high"}})
	require.Len(t, got, 4)

	withSearch := table.Filter(rows, Criteria{Search: "cement", Facets: map[string]string{"quantityFilter": "high"}})
	assert.Equal(t, []string{"l1", "l6"}, keysOf(withSearch))
}

func TestFilter_Idempotence(t *testing.T) {
	table := testTable()
	rows := sampleRows()

	criteria := []Criteria{
		{},
		{Search: "cement"},
		{Facets: map[string]string{"quantityFilter": "high"}},
		{Search: "s", SearchField: "title", Facets: map[string]string{"priceFilter": "cheap"}},
	}

	for _, c := range criteria {
		once := table.Filter(rows, c)
		twice := table.Filter(once, c)
		assert.Equal(t, keysOf(once), keysOf(twice))
	}
}

func TestFilter_Monotonicity(t *testing.T) {
	table := testTable()
	rows := sampleRows()

	base := Criteria{Facets: map[string]string{"quantityFilter": "high"}}
	narrowed := Criteria{Facets: map[string]string{"quantityFilter": "high", "priceFilter": "expensive"}}

	assert.LessOrEqual(t, len(table.Filter(rows, narrowed)), len(table.Filter(rows, base)))
}

func TestFilter_MissingValuesDegrade(t *testing.T) {
	// A table with unregistered accessors reads 0 / "" and never panics.
	table := NewTable(func(r row) string { return r.key }).
		Facet(Facet{Name: "quantityFilter", Field: "quantity", Buckets: []Bucket{{Name: "high", Gt: Ptr(20)}}})

	rows := sampleRows()
	assert.Empty(t, table.Filter(rows, Criteria{Facets: map[string]string{"quantityFilter": "high"}}))
	assert.Empty(t, table.Filter(rows, Criteria{Search: "cement"}))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	table := testTable()
	rows := sampleRows()
	before := keysOf(rows)

	table.Filter(rows, Criteria{Search: "cement"})
	assert.Equal(t, before, keysOf(rows))
}

func TestBucket_Contains(t *testing.T) {
	tests := []struct {
		name   string
		bucket Bucket
		value  float64
		want   bool
	}{
		{"lt boundary excluded", Bucket{Lt: Ptr(5)}, 5, false},
		{"lt inside", Bucket{Lt: Ptr(5)}, 4.99, true},
		{"gte boundary included", Bucket{Gte: Ptr(5)}, 5, true},
		{"gt boundary excluded", Bucket{Gt: Ptr(20)}, 20, false},
		{"gt above", Bucket{Gt: Ptr(20)}, 20.01, true},
		{"lte boundary included", Bucket{Lte: Ptr(10)}, 10, true},
		{"range", Bucket{Gte: Ptr(5), Lt: Ptr(20)}, 19.99, true},
		{"range upper excluded", Bucket{Gte: Ptr(5), Lt: Ptr(20)}, 20, false},
		{"unbounded matches everything", Bucket{}, -1000, true},
		{"custom test wins", Bucket{Gt: Ptr(100), Test: func(v float64) bool { return v == 7 }}, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bucket.Contains(tt.value))
		})
	}
}
