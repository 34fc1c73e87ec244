// Package importer turns spreadsheet CSV exports into client records. The
// parser is deliberately forgiving: quoted commas, a blank leading header
// line, mixed date formats, and loose header names all round-trip.
package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

// TemplateFilename is the suggested name for the blank import template.
const TemplateFilename = "clients_template.csv"

// headerAliases maps lowercased CSV headers to record fields. Headers not
// listed here fall back to their snake_cased form.
var headerAliases = map[string]string{
	"group":         "group",
	"name":          "name",
	"client name":   "name",
	"proposal date": "proposal_date",
	"date":          "proposal_date",
	"location":      "location",
	"city":          "location",
	"follow":        "follow",
	"proprietor":    "proprietor",
	"owner":         "proprietor",
	"mediator":      "mediator",
	"contact no":    "contact_no",
	"contact":       "contact_no",
	"phone":         "contact_no",
	"file":          "file_seen",
	"file seen":     "file_seen",
	"status":        "status",
	"reason":        "reason",
}

// Row is one imported record, tagged with a local id so the edit grid can
// track it before the server assigns a real one.
type Row struct {
	LocalID string
	Record  client.Client
}

// Result is a parsed import.
type Result struct {
	Rows []Row
	// Skipped counts data rows dropped for having no name.
	Skipped int
}

// Parse reads a whole CSV document. It returns an error only when the file
// yields no headers or no data rows at all; individual bad cells degrade to
// defaults instead of failing the import.
func Parse(text string) (Result, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return Result{}, fmt.Errorf("csv is empty")
	}

	headers := splitLine(lines[0])
	start := 1
	if allBlank(headers) && len(lines) > 1 {
		if next := splitLine(lines[1]); !allBlank(next) {
			headers = next
			start = 2
		}
	}
	if allBlank(headers) {
		return Result{}, fmt.Errorf("csv has no headers")
	}

	fields := make([]string, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if mapped, ok := headerAliases[key]; ok {
			fields[i] = mapped
		} else {
			fields[i] = strings.Join(strings.Fields(key), "_")
		}
	}

	var res Result
	seen := 0
	for _, line := range lines[start:] {
		cells := splitLine(line)
		if allBlank(cells) {
			continue
		}
		seen++
		rec := mapRow(fields, cells)
		if strings.TrimSpace(rec.Name) == "" {
			res.Skipped++
			continue
		}
		res.Rows = append(res.Rows, Row{LocalID: uuid.NewString(), Record: rec})
	}
	if seen == 0 {
		return Result{}, fmt.Errorf("csv has no data rows")
	}
	return res, nil
}

func mapRow(fields, cells []string) client.Client {
	rec := client.Client{Status: client.DefaultStatus}
	for i, field := range fields {
		var val string
		if i < len(cells) {
			val = strings.TrimSpace(cells[i])
		}
		switch field {
		case "group":
			rec.Group = val
		case "name":
			rec.Name = val
		case "proposal_date":
			rec.ProposalDate = NormalizeDate(val)
		case "location":
			rec.Location = val
		case "follow":
			rec.Follow = val
		case "proprietor":
			rec.Proprietor = val
		case "mediator":
			rec.Mediator = val
		case "contact_no":
			rec.ContactNo = client.Digits(val)
		case "file_seen":
			rec.FileSeen = client.ParseTriState(val)
		case "status":
			rec.Status = client.ParseStatus(val)
		case "reason":
			rec.Reason = val
		}
	}
	return rec
}

// splitLine splits one CSV line, honoring double quotes and the "" escape.
func splitLine(line string) []string {
	var out []string
	var cur strings.Builder
	quoted := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				quoted = !quoted
			}
		case c == ',' && !quoted:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var (
	dmyPattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	ymdPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// NormalizeDate accepts dd-mm-yyyy, dd/mm/yyyy, or yyyy-mm-dd and returns
// yyyy-mm-dd. Anything else comes back empty.
func NormalizeDate(s string) string {
	t := strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
	if m := dmyPattern.FindStringSubmatch(t); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	if ymdPattern.MatchString(t) {
		return t
	}
	return ""
}

// Merge appends imported rows to the current grid, first discarding grid
// rows that hold no data. Dropped reports how many grid rows were removed.
func Merge(existing []Row, imported []Row) (merged []Row, dropped int) {
	for _, row := range existing {
		if row.Record.IsEmpty() {
			dropped++
			continue
		}
		merged = append(merged, row)
	}
	return append(merged, imported...), dropped
}

// Template builds the blank import CSV with one sample row, CRLF-separated
// like the spreadsheet tools expect.
func Template() string {
	headers := []string{
		"Group", "Name", "Proposal Date", "Location", "Follow",
		"Proprietor", "Mediator", "Contact No", "File", "Status", "Reason",
	}
	sample := []string{
		"ACME", "John Traders", "2025-01-15", "Coimbatore", "Vimalraj",
		"Owner Name", "Mediator Name", "9876543210", "YES", "REJECTED",
		"Already rejected",
	}
	quoted := make([]string, len(sample))
	for i, s := range sample {
		quoted[i] = `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return strings.Join(headers, ",") + "\r\n" + strings.Join(quoted, ",")
}
