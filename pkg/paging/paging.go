package paging

// DefaultPageSize is the number of products on one page.
const DefaultPageSize = 12

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// TotalPages is never below one, an empty result is still one page.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return max(1, (total+size-1)/size)
}

func ClampPage(page, totalPages int) int {
	return max(1, min(page, totalPages))
}

// Window returns the half-open slice [(page-1)*size, page*size) of items
// after clamping page into [1, TotalPages]. The returned items share the
// backing array of the input.
func Window[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	l := len(items)
	total := TotalPages(l, size)
	page = ClampPage(page, total)
	start := min(l, (page-1)*size)
	end := min(l, start+size)
	window := items[start:end]
	if window == nil {
		window = []T{}
	}
	return Page[T]{
		Items:      window,
		Page:       page,
		TotalPages: total,
		Total:      l,
	}
}
