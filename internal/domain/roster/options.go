package roster

import (
	"sort"
	"strconv"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

// Facet option lists are derived from the buckets actually present in the
// working set: prefixed with All, suffixed with UNKNOWN only when at least
// one record falls in that bucket.

// GroupOptions returns the group facet options, sorted ascending.
func GroupOptions(rows []client.Client) []string {
	return textOptions(rows, func(c client.Client) string { return client.UpperOrUnknown(c.Group) })
}

// FollowOptions returns the follow facet options, sorted ascending.
func FollowOptions(rows []client.Client) []string {
	return textOptions(rows, func(c client.Client) string { return client.UpperOrUnknown(c.Follow) })
}

// YearOptions returns the year facet options, newest first.
func YearOptions(rows []client.Client) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		seen[r.Year()] = true
	}
	years := make([]string, 0, len(seen))
	for v := range seen {
		if v != client.Unknown {
			years = append(years, v)
		}
	}
	sort.Slice(years, func(i, j int) bool {
		a, _ := strconv.Atoi(years[i])
		b, _ := strconv.Atoi(years[j])
		return a > b
	})
	out := append([]string{All}, years...)
	if seen[client.Unknown] {
		out = append(out, client.Unknown)
	}
	return out
}

// MonthOptions returns the fixed month facet options.
func MonthOptions() []string {
	out := append([]string{All}, client.Months3...)
	return append(out, client.Unknown)
}

// StatusOptions returns the fixed status facet options.
func StatusOptions() []string {
	out := []string{All}
	for _, s := range client.Statuses() {
		out = append(out, string(s))
	}
	return out
}

// FileSeenOptions returns the fixed tri-state facet options.
func FileSeenOptions() []string {
	return []string{All, "YES", "NO", client.Unknown}
}

func textOptions(rows []client.Client, bucket func(client.Client) string) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		seen[bucket(r)] = true
	}
	vals := make([]string, 0, len(seen))
	for v := range seen {
		if v != client.Unknown {
			vals = append(vals, v)
		}
	}
	sort.Strings(vals)
	out := append([]string{All}, vals...)
	if seen[client.Unknown] {
		out = append(out, client.Unknown)
	}
	return out
}
