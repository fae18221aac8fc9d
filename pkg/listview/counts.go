package listview

// FacetCounts tallies, for every registered facet, how many of the given
// rows fall into each bucket. Counts are taken over whatever slice the
// caller passes, typically the filtered row set, so the numbers shown next
// to a bucket reflect the other active filters.
func (t *Table[T]) FacetCounts(items []T) map[string]map[string]int {
	if len(t.facets) == 0 {
		return nil
	}

	counts := make(map[string]map[string]int, len(t.facets))
	for name, facet := range t.facets {
		perBucket := make(map[string]int, len(facet.Buckets))
		for _, b := range facet.Buckets {
			perBucket[b.Name] = 0
		}
		for _, item := range items {
			v := t.number(item, facet.Field)
			for _, b := range facet.Buckets {
				if b.Contains(v) {
					perBucket[b.Name]++
				}
			}
		}
		counts[name] = perBucket
	}
	return counts
}
