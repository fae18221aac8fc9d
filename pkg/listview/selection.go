package listview

// Selection tracks bulk-selected row keys across page, filter and sort
// changes for one list view instance. Rows are identified by their key, not
// by object identity, so a selection survives the source slice being rebuilt
// from a refetch. Selection is not safe for concurrent use; each view owns
// its own tracker.
type Selection[T any] struct {
	key  KeyFunc[T]
	keys map[string]struct{}
}

// NewSelection creates an empty tracker keyed by the given accessor.
func NewSelection[T any](key KeyFunc[T]) *Selection[T] {
	return &Selection[T]{
		key:  key,
		keys: make(map[string]struct{}),
	}
}

// Toggle flips one row's membership.
func (s *Selection[T]) Toggle(item T) {
	k := s.key(item)
	if _, ok := s.keys[k]; ok {
		delete(s.keys, k)
	} else {
		s.keys[k] = struct{}{}
	}
}

// IsSelected reports whether the row is selected.
func (s *Selection[T]) IsSelected(item T) bool {
	_, ok := s.keys[s.key(item)]
	return ok
}

// TogglePage selects every row of the current page, adding to whatever is
// already selected on other pages. If the page is already fully selected it
// deselects the page instead.
func (s *Selection[T]) TogglePage(page []T) {
	if s.PageFullySelected(page) {
		for _, item := range page {
			delete(s.keys, s.key(item))
		}
		return
	}
	for _, item := range page {
		s.keys[s.key(item)] = struct{}{}
	}
}

// PageFullySelected is true only for a non-empty page whose every row is
// selected.
func (s *Selection[T]) PageFullySelected(page []T) bool {
	if len(page) == 0 {
		return false
	}
	for _, item := range page {
		if !s.IsSelected(item) {
			return false
		}
	}
	return true
}

// PartialSelection is the indeterminate checkbox state: some but not all of
// the current page is selected.
func (s *Selection[T]) PartialSelection(page []T) bool {
	selected := 0
	for _, item := range page {
		if s.IsSelected(item) {
			selected++
		}
	}
	return selected > 0 && selected < len(page)
}

// Count returns the number of selected keys.
func (s *Selection[T]) Count() int { return len(s.keys) }

// Keys returns the selected keys in unspecified order.
func (s *Selection[T]) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	return out
}

// SelectedItems returns the source rows that are selected, in source order.
func (s *Selection[T]) SelectedItems(source []T) []T {
	out := make([]T, 0, len(s.keys))
	for _, item := range source {
		if s.IsSelected(item) {
			out = append(out, item)
		}
	}
	return out
}

// Sync intersects the selection with the keys present in a fresh source
// collection. The tracker is never notified of deletions; callers re-derive
// the source after a mutation and Sync drops vanished keys so selection
// counts never reference deleted rows.
func (s *Selection[T]) Sync(source []T) {
	known := make(map[string]struct{}, len(source))
	for _, item := range source {
		known[s.key(item)] = struct{}{}
	}
	for k := range s.keys {
		if _, ok := known[k]; !ok {
			delete(s.keys, k)
		}
	}
}

// Clear removes every selected key.
func (s *Selection[T]) Clear() {
	s.keys = make(map[string]struct{})
}
