package roster

import (
	"sort"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

// Selection tracks the checked row ids. It survives page navigation within
// the same filter; the Browser clears it whenever the filter or page size
// changes, since the reachable id space changes with them.
type Selection struct {
	ids map[client.ID]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[client.ID]struct{})}
}

// Toggle flips membership of one id.
func (s *Selection) Toggle(id client.ID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Has reports whether an id is selected.
func (s *Selection) Has(id client.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (s *Selection) Count() int { return len(s.ids) }

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[client.ID]struct{})
}

// IDs returns the selected ids in a stable order.
func (s *Selection) IDs() []client.ID {
	out := make([]client.ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TogglePage selects every row on the current page, or deselects them all
// when every one is already selected. Rows on other pages are untouched.
func (s *Selection) TogglePage(page []client.Client) {
	all := len(page) > 0
	for _, r := range page {
		if !s.Has(r.ID) {
			all = false
			break
		}
	}
	for _, r := range page {
		if all {
			delete(s.ids, r.ID)
		} else {
			s.ids[r.ID] = struct{}{}
		}
	}
}

// Records returns the selected records in the order they appear in rows.
func (s *Selection) Records(rows []client.Client) []client.Client {
	out := make([]client.Client, 0, len(s.ids))
	for _, r := range rows {
		if s.Has(r.ID) {
			out = append(out, r)
		}
	}
	return out
}
