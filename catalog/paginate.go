package catalog

// DefaultPageSize is the number of products per catalogue page.
const DefaultPageSize = 40

// TotalPages is ceil(count/pageSize), 0 for an empty list.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of items and the page count. A page
// outside [1, totalPages] yields an empty slice rather than an error.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(items), pageSize)
	if page < 1 || page > total {
		return []T{}, total
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

// clampPage pins page into [1, max(totalPages, 1)].
func clampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		return 1
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}
