package listview

// Page is one slice of a filtered+sorted collection plus its boundary
// metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	Current    int `json:"currentPage"`
	Size       int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// DefaultPageSize is used when a request carries no usable page size.
const DefaultPageSize = 10

// Paginate slices items into the requested page. The requested page is
// clamped into [1, totalPages], so a view whose filter shrank the collection
// lands on the last valid page rather than an empty one. totalPages is at
// least 1 even for an empty collection.
func Paginate[T any](items []T, st PageState) Page[T] {
	size := st.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	current := st.Current
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Current:    current,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
