package listview

import "strings"

// Filter applies the search predicate and every selected facet to items,
// preserving input order. Facets are evaluated independently and ANDed;
// bypass values ("", "any", "none") and unknown bucket names constrain
// nothing. The result is always a fresh slice.
func (t *Table[T]) Filter(items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if t.matches(item, c) {
			out = append(out, item)
		}
	}
	return out
}

func (t *Table[T]) matches(item T, c Criteria) bool {
	if !t.matchesSearch(item, c) {
		return false
	}
	for name, bucketName := range c.Facets {
		if facetBypass(bucketName) {
			continue
		}
		facet, ok := t.facets[name]
		if !ok {
			continue
		}
		bucket, ok := facet.bucket(bucketName)
		if !ok {
			continue
		}
		if !bucket.Contains(t.number(item, facet.Field)) {
			return false
		}
	}
	return true
}

// matchesSearch does a case-insensitive substring match against either one
// named field or the joined registered text fields. A named field may be
// textual or numeric; numeric fields match on their stringified value.
func (t *Table[T]) matchesSearch(item T, c Criteria) bool {
	query := strings.ToLower(strings.TrimSpace(c.Search))
	if query == "" {
		return true
	}

	field := c.SearchField
	if field != "" && field != SearchAll {
		return strings.Contains(strings.ToLower(t.fieldText(item, field)), query)
	}

	var sb strings.Builder
	for i, name := range t.searchable {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.textFields[name](item))
	}
	return strings.Contains(strings.ToLower(sb.String()), query)
}
