package listview

import (
	"sort"
	"strings"
)

// Sort returns a new slice ordered by the spec. The input is never mutated.
// An empty field returns a shallow copy in input order. Equal keys keep their
// relative input order for both directions (sort.SliceStable, not the
// platform default). Desc only inverts the comparator sign.
func (t *Table[T]) Sort(items []T, spec SortSpec) []T {
	out := make([]T, len(items))
	copy(out, items)

	if spec.Field == "" {
		return out
	}

	less := t.lessFunc(spec.Field)
	if less == nil {
		return out
	}
	if spec.Direction == Desc {
		asc := less
		less = func(a, b T) bool { return asc(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// lessFunc builds the ascending comparator for a field: numeric fields
// compare numerically, text fields lexicographically. Unknown fields yield
// nil (input order preserved).
func (t *Table[T]) lessFunc(field string) func(a, b T) bool {
	if get, ok := t.numFields[field]; ok {
		return func(a, b T) bool { return get(a) < get(b) }
	}
	if get, ok := t.textFields[field]; ok {
		return func(a, b T) bool { return strings.Compare(get(a), get(b)) < 0 }
	}
	return nil
}
