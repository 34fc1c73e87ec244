// Package roster holds the in-memory working set of client records and
// derives the dashboard's visible rows from it: filtering, facet options,
// pagination and row selection.
package roster

import "github.com/rejectlist/rejectdesk/internal/domain/client"

// Set is the working set: the full record list fetched wholesale from the
// API and patched locally after mutations instead of re-fetched.
type Set struct {
	rows []client.Client
}

// NewSet wraps a freshly fetched record list.
func NewSet(rows []client.Client) *Set {
	return &Set{rows: rows}
}

// Rows returns the full working set in fetch order.
func (s *Set) Rows() []client.Client { return s.rows }

// Len returns the working set size.
func (s *Set) Len() int { return len(s.rows) }

// Get looks a record up by id.
func (s *Set) Get(id client.ID) (client.Client, bool) {
	for _, r := range s.rows {
		if r.ID == id {
			return r, true
		}
	}
	return client.Client{}, false
}

// Replace swaps in a new wholesale fetch.
func (s *Set) Replace(rows []client.Client) {
	s.rows = rows
}

// ApplyCreated appends a server-confirmed record.
func (s *Set) ApplyCreated(c client.Client) {
	s.rows = append(s.rows, c)
}

// ApplyUpdated replaces the record with the same id in place. Unknown ids
// are appended so a stale set still converges.
func (s *Set) ApplyUpdated(c client.Client) {
	for i, r := range s.rows {
		if r.ID == c.ID {
			s.rows[i] = c
			return
		}
	}
	s.rows = append(s.rows, c)
}

// ApplyDeleted removes the record with the given id, if present.
func (s *Set) ApplyDeleted(id client.ID) {
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return
		}
	}
}
