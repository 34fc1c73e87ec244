package roster

import (
	"strings"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

// All is the facet value meaning "no constraint".
const All = "ALL"

// Filter narrows the working set with a free-text query and six independent
// facets. Facets hold All, a concrete bucket value, or the synthetic
// UNKNOWN bucket.
type Filter struct {
	Query    string
	Group    string
	Follow   string
	Year     string
	Month    string
	FileSeen string
	Status   string
}

// NewFilter returns a filter with every facet at All and no query.
func NewFilter() Filter {
	return Filter{
		Group:    All,
		Follow:   All,
		Year:     All,
		Month:    All,
		FileSeen: All,
		Status:   All,
	}
}

// Active reports whether the filter constrains anything. The dashboard
// deliberately shows no rows until a search or filter is active, so an
// inactive filter yields an empty result set rather than the full table.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" ||
		f.Group != All ||
		f.Follow != All ||
		f.Year != All ||
		f.Month != All ||
		f.FileSeen != All ||
		f.Status != All
}

// Matches applies the query and every non-All facet, AND-combined.
func (f Filter) Matches(c client.Client) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !matchesQuery(c, q) {
			return false
		}
	}
	if f.Group != All && client.UpperOrUnknown(c.Group) != f.Group {
		return false
	}
	if f.Follow != All && client.UpperOrUnknown(c.Follow) != f.Follow {
		return false
	}
	if f.Year != All && c.Year() != f.Year {
		return false
	}
	if f.Month != All && c.Month3() != f.Month {
		return false
	}
	if f.FileSeen != All && c.FileSeen.String() != f.FileSeen {
		return false
	}
	if f.Status != All && client.NormalizeStatus(string(c.Status)) != f.Status {
		return false
	}
	return true
}

// matchesQuery checks the fixed field projection for a case-insensitive
// substring hit.
func matchesQuery(c client.Client, q string) bool {
	for _, field := range []string{
		string(c.ID), c.Group, c.Name, c.Location, c.Follow, string(c.Status), c.Reason,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Apply returns the subset of rows the filter admits, preserving order. An
// inactive filter returns no rows (see Active).
func (f Filter) Apply(rows []client.Client) []client.Client {
	if !f.Active() {
		return nil
	}
	out := make([]client.Client, 0, len(rows))
	for _, r := range rows {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
