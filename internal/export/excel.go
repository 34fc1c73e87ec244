package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
)

// SheetName is the worksheet holding the exported roster.
const SheetName = "Clients"

// DefaultFilename is used when no filter is active.
const DefaultFilename = "all_clients.xlsx"

var excelHeaders = []string{
	"Sl.No", "Group", "Name", "Proposal Date", "Location", "Follow",
	"Proprietor", "Mediator", "Contact No", "File Seen", "Status", "Reason",
}

var excelWidths = []float64{8, 15, 30, 15, 20, 15, 20, 20, 15, 12, 15, 40}

// Filename derives the export filename from the active filters, so a
// filtered export says what it contains. All-default filters produce
// DefaultFilename.
func Filename(f roster.Filter) string {
	var parts []string
	add := func(prefix, value string) {
		parts = append(parts, prefix+"_"+slug(value))
	}
	if f.Group != roster.All {
		add("group", f.Group)
	}
	if f.Follow != roster.All {
		add("follow", f.Follow)
	}
	if f.Year != roster.All {
		add("year", f.Year)
	}
	if f.Month != roster.All {
		add("month", f.Month)
	}
	if f.Status != roster.All {
		add("status", f.Status)
	}
	if f.FileSeen != roster.All {
		add("file", f.FileSeen)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		s := slug(q)
		if len(s) > 20 {
			s = s[:20]
		}
		parts = append(parts, "search_"+s)
	}
	if len(parts) == 0 {
		return DefaultFilename
	}
	return strings.Join(parts, "_") + ".xlsx"
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// Workbook builds the export spreadsheet: one Clients sheet, a numbered
// row per record, fixed column widths.
func Workbook(rows []client.Client) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for r, rec := range rows {
		values := []any{
			r + 1,
			dash(rec.Group),
			dash(rec.Name),
			dash(first10(rec.ProposalDate)),
			dash(rec.Location),
			dash(rec.Follow),
			dash(rec.Proprietor),
			dash(rec.Mediator),
			dash(rec.ContactNo),
			rec.FileSeen.String(),
			dash(string(rec.Status)),
			dash(rec.Reason),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", r+1, err)
			}
		}
	}

	for i, w := range excelWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}
	return f, nil
}

// WriteFile saves the export workbook at path.
func WriteFile(path string, rows []client.Client) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to export")
	}
	f, err := Workbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func first10(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
