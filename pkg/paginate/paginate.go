// Package paginate provides the page math shared by list screens.
package paginate

// Pages returns how many pages are needed for total items at perPage
// items each. Zero totals yield zero pages.
func Pages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Clamp keeps page within [1, Pages(total, perPage)], collapsing to 1
// when there are no pages at all. List screens call this after deletes
// so the current page never points past the end.
func Clamp(page, total, perPage int) int {
	pages := Pages(total, perPage)
	if pages == 0 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// Slice returns the items visible on page (1-based).
func Slice[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		return items
	}
	page = Clamp(page, len(items), perPage)
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Numbers lists the page numbers for a pagination bar.
func Numbers(total, perPage int) []int {
	pages := Pages(total, perPage)
	nums := make([]int, pages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
