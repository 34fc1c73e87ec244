package roster_test

import (
	"testing"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

func activeBrowser(t *testing.T, n int) *roster.Browser {
	t.Helper()
	b := roster.NewBrowser(roster.NewSet(makeRows(n)))
	f := roster.NewFilter()
	f.Query = "client" // matches every generated row
	b.SetFilter(f)
	return b
}

func TestBrowser_SelectionSurvivesPageNavigation(t *testing.T) {
	b := activeBrowser(t, 25)

	v := b.View()
	b.Selection().Toggle(v.Rows[0].ID)
	b.Selection().Toggle(v.Rows[1].ID)
	require.Equal(t, 2, b.Selection().Count())

	b.NextPage()
	require.Equal(t, 2, b.View().Page)
	require.Equal(t, 2, b.Selection().Count())

	b.LastPage()
	b.FirstPage()
	require.Equal(t, 2, b.Selection().Count())
}

func TestBrowser_FilterChangeClearsSelectionAndResetsPage(t *testing.T) {
	b := activeBrowser(t, 25)
	b.Selection().Toggle(b.View().Rows[0].ID)
	b.NextPage()

	f := b.Filter()
	f.Status = string(client.StatusRejected)
	b.SetFilter(f)

	require.Zero(t, b.Selection().Count())
	require.Equal(t, 1, b.View().Page)
}

func TestBrowser_PageSizeChangeClearsSelectionAndResetsPage(t *testing.T) {
	b := activeBrowser(t, 60)
	b.Selection().Toggle(b.View().Rows[0].ID)
	b.NextPage()

	b.SetPageSize(50)
	require.Zero(t, b.Selection().Count())
	v := b.View()
	require.Equal(t, 1, v.Page)
	require.Equal(t, 50, v.PageSize)

	// invalid sizes are ignored and nothing resets
	b.Selection().Toggle(v.Rows[0].ID)
	b.SetPageSize(37)
	require.Equal(t, 1, b.Selection().Count())
	require.Equal(t, 50, b.PageSize())
}

func TestBrowser_SameFilterIsNoop(t *testing.T) {
	b := activeBrowser(t, 25)
	b.Selection().Toggle(b.View().Rows[0].ID)
	b.NextPage()

	b.SetFilter(b.Filter())
	require.Equal(t, 1, b.Selection().Count())
	require.Equal(t, 2, b.View().Page)
}

func TestBrowser_DeleteShrinksLastPage(t *testing.T) {
	b := activeBrowser(t, 21)
	b.LastPage()
	v := b.View()
	require.Equal(t, 3, v.Page)
	require.Len(t, v.Rows, 1)

	b.Set().ApplyDeleted(v.Rows[0].ID)
	v = b.View()
	require.Equal(t, 2, v.Page) // clamped after the last page emptied
	require.Len(t, v.Rows, 10)
}

func TestSelection_TogglePage(t *testing.T) {
	b := activeBrowser(t, 25)
	v := b.View()

	b.Selection().TogglePage(v.Rows)
	require.Equal(t, 10, b.Selection().Count())

	// second toggle with all selected deselects the page only
	b.NextPage()
	b.Selection().Toggle(b.View().Rows[0].ID)
	b.FirstPage()
	b.Selection().TogglePage(b.View().Rows)
	require.Equal(t, 1, b.Selection().Count())
}

func TestSelection_RecordsInFilteredOrder(t *testing.T) {
	b := activeBrowser(t, 5)
	rows := b.Filtered()
	b.Selection().Toggle(rows[3].ID)
	b.Selection().Toggle(rows[1].ID)

	sel := b.SelectedRecords()
	require.Len(t, sel, 2)
	require.Equal(t, rows[1].ID, sel[0].ID)
	require.Equal(t, rows[3].ID, sel[1].ID)
}
