// Package listview implements the tabular list-view engine shared by every
// collection endpoint: search/facet filtering, stable sorting, pagination and
// cross-page bulk selection. All functions are total: malformed criteria and
// missing fields degrade to defaults instead of failing.
package listview

import "strconv"

// KeyFunc extracts the stable unique key of a row.
type KeyFunc[T any] func(T) string

// Table describes how the engine reads rows of one entity type. Fields are
// registered once per table with explicit accessors, so filtering and sorting
// never index rows by dynamic property names.
type Table[T any] struct {
	key        KeyFunc[T]
	textFields map[string]func(T) string
	numFields  map[string]func(T) float64
	searchable []string
	facets     map[string]Facet
}

// NewTable creates a table definition keyed by the given accessor.
func NewTable[T any](key KeyFunc[T]) *Table[T] {
	return &Table[T]{
		key:        key,
		textFields: make(map[string]func(T) string),
		numFields:  make(map[string]func(T) float64),
		facets:     make(map[string]Facet),
	}
}

// Text registers a textual field. Registered text fields participate in
// "all fields" search in registration order.
func (t *Table[T]) Text(name string, get func(T) string) *Table[T] {
	t.textFields[name] = get
	t.searchable = append(t.searchable, name)
	return t
}

// Number registers a numeric field usable for facets and numeric sorting.
func (t *Table[T]) Number(name string, get func(T) float64) *Table[T] {
	t.numFields[name] = get
	return t
}

// Facet attaches a facet definition to the table. The facet's Field must name
// a registered numeric field; facets over unknown fields evaluate against 0.
func (t *Table[T]) Facet(f Facet) *Table[T] {
	t.facets[f.Name] = f
	return t
}

// Key returns the row key. A nil key accessor yields "".
func (t *Table[T]) Key(item T) string {
	if t.key == nil {
		return ""
	}
	return t.key(item)
}

// HasField reports whether the named field is registered (text or numeric).
func (t *Table[T]) HasField(name string) bool {
	if _, ok := t.textFields[name]; ok {
		return true
	}
	_, ok := t.numFields[name]
	return ok
}

// text reads a text field, degrading to "" for unknown fields.
func (t *Table[T]) text(item T, field string) string {
	if get, ok := t.textFields[field]; ok {
		return get(item)
	}
	return ""
}

// number reads a numeric field, degrading to 0 for unknown fields.
func (t *Table[T]) number(item T, field string) float64 {
	if get, ok := t.numFields[field]; ok {
		return get(item)
	}
	return 0
}

// fieldText renders any registered field as text, numeric fields through
// their shortest decimal form. Unknown fields read as "".
func (t *Table[T]) fieldText(item T, field string) string {
	if get, ok := t.textFields[field]; ok {
		return get(item)
	}
	if get, ok := t.numFields[field]; ok {
		return strconv.FormatFloat(get(item), 'f', -1, 64)
	}
	return ""
}
