package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*roster.Filter)
		want   string
	}{
		{
			name:   "no active filters",
			mutate: func(f *roster.Filter) {},
			want:   "all_clients.xlsx",
		},
		{
			name:   "single facet",
			mutate: func(f *roster.Filter) { f.Group = "ACPL CLIENT" },
			want:   "group_acpl_client.xlsx",
		},
		{
			name: "facets combine in fixed order",
			mutate: func(f *roster.Filter) {
				f.Year = "2025"
				f.Status = "FOLLOW UP"
				f.Group = "DIRECT"
			},
			want: "group_direct_year_2025_status_follow_up.xlsx",
		},
		{
			name:   "search query is slugged and truncated",
			mutate: func(f *roster.Filter) { f.Query = "a very long search phrase indeed" },
			want:   "search_a_very_long_search_p.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := roster.NewFilter()
			tt.mutate(&f)
			require.Equal(t, tt.want, Filename(f))
		})
	}
}

func TestWorkbookContents(t *testing.T) {
	rows := []client.Client{
		{
			Name:         "Acme Traders",
			Group:        "DIRECT",
			ProposalDate: "2025-01-15T00:00:00Z",
			ContactNo:    "9876543210",
			FileSeen:     client.TriYes,
			Status:       client.StatusRejected,
			Reason:       "over limit",
		},
		{Name: "Beta Mills", FileSeen: client.TriNo},
	}

	f, err := Workbook(rows)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(SheetName, cell)
		require.NoError(t, err)
		return v
	}

	require.Equal(t, "Sl.No", get("A1"))
	require.Equal(t, "Reason", get("L1"))

	require.Equal(t, "1", get("A2"))
	require.Equal(t, "Acme Traders", get("C2"))
	require.Equal(t, "2025-01-15", get("D2"))
	require.Equal(t, "YES", get("J2"))
	require.Equal(t, "REJECTED", get("K2"))

	require.Equal(t, "2", get("A3"))
	require.Equal(t, "—", get("B3"), "blank fields render as a dash")
	require.Equal(t, "NO", get("J3"))

	w, err := f.GetColWidth(SheetName, "C")
	require.NoError(t, err)
	require.InDelta(t, 30, w, 1)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	rows := []client.Client{{Name: "Acme"}}

	require.NoError(t, WriteFile(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(SheetName, "C2")
	require.NoError(t, err)
	require.Equal(t, "Acme", v)
}

func TestWriteFileRejectsEmpty(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "out.xlsx"), nil)
	require.Error(t, err)
}
