package roster

import "github.com/rejectlist/rejectdesk/internal/domain/client"

// PageSizes lists the selectable page sizes.
var PageSizes = []int{10, 20, 50}

// DefaultPageSize is used until the user picks another size.
const DefaultPageSize = 10

// ValidPageSize reports whether n is a selectable page size.
func ValidPageSize(n int) bool {
	for _, p := range PageSizes {
		if p == n {
			return true
		}
	}
	return false
}

// View is one page of a filtered set, plus the numbers the pagination
// footer renders.
type View struct {
	Rows     []client.Client
	Page     int // 1-based, clamped to [1, Pages]
	Pages    int // at least 1
	Total    int // filtered set size
	PageSize int
	Start    int // 1-based index of the first visible row, 0 when empty
	End      int // 1-based index of the last visible row, 0 when empty
}

// Paginate slices rows into the requested page. The page number is clamped
// into [1, ceil(len/size)]; an out-of-range request never errors.
func Paginate(rows []client.Client, page, size int) View {
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(rows)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	v := View{Page: page, Pages: pages, Total: total, PageSize: size}
	if total == 0 {
		return v
	}
	lo := (page - 1) * size
	hi := lo + size
	if hi > total {
		hi = total
	}
	v.Rows = rows[lo:hi]
	v.Start = lo + 1
	v.End = hi
	return v
}
