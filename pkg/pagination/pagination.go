package pagination

import "strconv"

// ParsePage reads a 1-based page number from a query value. Missing or
// malformed values yield 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// TotalPages is the number of pages needed to hold count items.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Clamp bounds page into [1, totalPages]. With no pages the result is 1.
func Clamp(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Offset is the index of the first item on page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// Window is the half-open index range [Start, End) of one page over count items.
type Window struct {
	Page       int
	TotalPages int
	Start      int
	End        int
}

func NewWindow(requested, count, pageSize int) Window {
	total := TotalPages(count, pageSize)
	page := Clamp(requested, total)
	start := Offset(page, pageSize)
	end := start + pageSize
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}
	return Window{Page: page, TotalPages: total, Start: start, End: end}
}
