package listview

// SearchAll selects the concatenation of every registered text field.
const SearchAll = "all"

// FacetAny is the no-op bucket value; "" and "none" are treated the same.
const FacetAny = "any"

// Criteria captures one list view's filter inputs: a free-text search plus
// independent facet selections. Absent facets leave the view unconstrained.
type Criteria struct {
	Search      string            `json:"search"`
	SearchField string            `json:"searchField"`
	Facets      map[string]string `json:"facets"`
}

// facetBypass reports whether a selected bucket value is a no-op.
func facetBypass(bucket string) bool {
	return bucket == "" || bucket == FacetAny || bucket == "none" || bucket == SearchAll
}

// Facet is a named filter dimension over one numeric field with discrete
// buckets.
type Facet struct {
	Name    string   `json:"name" yaml:"name"`
	Field   string   `json:"field" yaml:"field"`
	Buckets []Bucket `json:"buckets" yaml:"buckets"`
}

// bucket finds a bucket by name; ok is false for unknown names.
func (f Facet) bucket(name string) (Bucket, bool) {
	for _, b := range f.Buckets {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// Bucket is one numeric range within a facet. Bounds left nil are open. Test,
// when set, replaces the bound checks entirely (used for expression-defined
// buckets).
type Bucket struct {
	Name string             `json:"name" yaml:"name"`
	Gt   *float64           `json:"gt,omitempty" yaml:"gt,omitempty"`
	Gte  *float64           `json:"gte,omitempty" yaml:"gte,omitempty"`
	Lt   *float64           `json:"lt,omitempty" yaml:"lt,omitempty"`
	Lte  *float64           `json:"lte,omitempty" yaml:"lte,omitempty"`
	Test func(float64) bool `json:"-" yaml:"-"`
}

// Contains reports whether a value falls inside the bucket.
func (b Bucket) Contains(v float64) bool {
	if b.Test != nil {
		return b.Test(v)
	}
	if b.Gt != nil && !(v > *b.Gt) {
		return false
	}
	if b.Gte != nil && !(v >= *b.Gte) {
		return false
	}
	if b.Lt != nil && !(v < *b.Lt) {
		return false
	}
	if b.Lte != nil && !(v <= *b.Lte) {
		return false
	}
	return true
}

// Ptr is a convenience for building bucket bounds.
func Ptr(v float64) *float64 { return &v }

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec orders a collection by one field. An empty field preserves input
// order.
type SortSpec struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// PageState is the pagination cursor of one list view.
type PageState struct {
	Current int `json:"currentPage"`
	Size    int `json:"pageSize"`
}

// WithSize returns a state with the new page size, reset to the first page.
func (p PageState) WithSize(size int) PageState {
	return PageState{Current: 1, Size: size}
}
