package search

import "slices"

// Bounds shared by limit and perPage
const (
	MinPageSize = 1
	MaxPageSize = 10
)

// Defaults applied when the widget is mounted
const (
	DefaultLimit   = 5
	DefaultPerPage = 3
)

// PageCount is ceil(total/limit); zero when there is nothing to page through
func PageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Offset is the zero-based skip count for a 1-based page
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// PageGap stands for a run of pages left out of a PageWindow
const PageGap = 0

// PageNeighbours is how many buttons are kept either side of the current
// page and of the cursor
const PageNeighbours = 2

// PageWindow lists the page buttons worth drawing out of 1..pages: the first
// and last page plus neighbours either side of current and cursor. Skipped
// runs collapse into one PageGap; a run of a single page is kept instead.
func PageWindow(pages, current, cursor, neighbours int) []int {
	if pages <= 0 {
		return nil
	}

	kept := []int{1, pages}
	for _, centre := range []int{current, cursor} {
		for p := centre - neighbours; p <= centre+neighbours; p++ {
			if p >= 1 && p <= pages {
				kept = append(kept, p)
			}
		}
	}
	slices.Sort(kept)
	kept = slices.Compact(kept)

	window := make([]int, 0, len(kept)+3)
	for i, p := range kept {
		if i > 0 {
			switch prev := kept[i-1]; p - prev {
			case 1:
			case 2:
				window = append(window, prev+1)
			default:
				window = append(window, PageGap)
			}
		}
		window = append(window, p)
	}
	return window
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
