package roster

import "github.com/rejectlist/rejectdesk/internal/domain/client"

// Browser combines the filter engine, pagination and selection with the
// reset rules the dashboard relies on: changing the query, any facet or the
// page size resets to page 1 and clears the selection; moving between pages
// of the same filtered set touches neither.
type Browser struct {
	set      *Set
	filter   Filter
	page     int
	pageSize int
	sel      *Selection
}

// NewBrowser wraps a working set with an inactive filter on page 1.
func NewBrowser(set *Set) *Browser {
	return &Browser{
		set:      set,
		filter:   NewFilter(),
		page:     1,
		pageSize: DefaultPageSize,
		sel:      NewSelection(),
	}
}

// Set exposes the underlying working set for local patches.
func (b *Browser) Set() *Set { return b.set }

// Filter returns the active filter.
func (b *Browser) Filter() Filter { return b.filter }

// Selection returns the selection coordinator.
func (b *Browser) Selection() *Selection { return b.sel }

// PageSize returns the active page size.
func (b *Browser) PageSize() int { return b.pageSize }

// SetFilter installs a new filter. Any change resets the page and clears
// the selection.
func (b *Browser) SetFilter(f Filter) {
	if f == b.filter {
		return
	}
	b.filter = f
	b.page = 1
	b.sel.Clear()
}

// SetPageSize switches the page size, resetting page and selection.
// Invalid sizes are ignored.
func (b *Browser) SetPageSize(n int) {
	if !ValidPageSize(n) || n == b.pageSize {
		return
	}
	b.pageSize = n
	b.page = 1
	b.sel.Clear()
}

// Filtered returns the rows the active filter admits.
func (b *Browser) Filtered() []client.Client {
	return b.filter.Apply(b.set.Rows())
}

// View returns the current page of the filtered set.
func (b *Browser) View() View {
	v := Paginate(b.Filtered(), b.page, b.pageSize)
	b.page = v.Page // keep the clamp
	return v
}

// NextPage advances one page, clamped to the last.
func (b *Browser) NextPage() { b.page++; b.View() }

// PrevPage steps back one page, clamped to the first.
func (b *Browser) PrevPage() { b.page--; b.View() }

// FirstPage jumps to page 1.
func (b *Browser) FirstPage() { b.page = 1 }

// LastPage jumps to the final page of the current filtered set.
func (b *Browser) LastPage() {
	b.page = Paginate(b.Filtered(), 1, b.pageSize).Pages
}

// SelectedRecords returns the selected records in filtered-set order.
func (b *Browser) SelectedRecords() []client.Client {
	return b.sel.Records(b.Filtered())
}
