// Package export renders client records for the outside world: clipboard
// text blocks and Excel workbooks named after the active filters.
package export

import (
	"strings"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

// RecordText formats one record as the shareable detail block. Every value
// is wrapped in asterisks and absent values read UNKNOWN.
func RecordText(rec client.Client) string {
	contact := rec.ContactNo
	if strings.TrimSpace(contact) == "" {
		contact = client.Unknown
	}
	lines := []string{
		"NAME: *" + client.UpperOrUnknown(rec.Name) + "*",
		"PROPOSAL DATE: *" + rec.ProposalDMY() + "*",
		"YEAR: *" + rec.Year() + "*",
		"MONTH: *" + rec.Month3() + "*",
		"LOCATION: *" + client.UpperOrUnknown(rec.Location) + "*",
		"FOLLOW: *" + client.UpperOrUnknown(rec.Follow) + "*",
		"PROPRIETOR: *" + client.UpperOrUnknown(rec.Proprietor) + "*",
		"CONTACT NO: *" + contact + "*",
		"FILE SEEN YES/NO: *" + rec.FileSeen.String() + "*",
		"STATUS: *" + client.UpperOrUnknown(string(rec.Status)) + "*",
		"REASON: *" + client.UpperOrUnknown(rec.Reason) + "*",
	}
	return strings.Join(lines, "\n")
}

// BulkText joins the detail blocks of several records with a blank line
// between each.
func BulkText(recs []client.Client) string {
	blocks := make([]string, len(recs))
	for i, rec := range recs {
		blocks[i] = RecordText(rec)
	}
	return strings.Join(blocks, "\n\n")
}
