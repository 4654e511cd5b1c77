package tableview

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// Page is the window of matching rows currently shown.
type Page struct {
	Index int // zero-based
	Size  int
	Count int // at least 1
	Total int
	Start int // offset of the first row on the page
	End   int // exclusive
}

// Window computes the page covering index for total rows. Index is clamped
// to the valid range and a non-positive size falls back to DefaultPageSize.
func Window(total, index, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	count := max(1, (total+size-1)/size)
	index = min(max(index, 0), count-1)
	start := index * size
	end := min(total, start+size)
	if start > end {
		start = end
	}
	return Page{Index: index, Size: size, Count: count, Total: total, Start: start, End: end}
}

// Number returns the one-based page number.
func (p Page) Number() int { return p.Index + 1 }

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Index > 0 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Index < p.Count-1 }

// ClampPageNumber maps a one-based page number into [1, count].
func ClampPageNumber(n, count int) int {
	return min(max(n, 1), max(count, 1))
}
