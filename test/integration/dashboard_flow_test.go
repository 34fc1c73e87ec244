package integration_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rejectlist/rejectdesk/internal/authz"
	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
	"github.com/rejectlist/rejectdesk/internal/export"
	"github.com/rejectlist/rejectdesk/internal/importer"
)

func seedClients() []client.Client {
	return []client.Client{
		{ID: "1", Group: "DIRECT", Name: "ACME TRADERS", ProposalDate: "2025-01-15", Location: "CHENNAI", Follow: "VIMAL", Status: client.StatusRejected},
		{ID: "2", Group: "JC SALES", Name: "BLUE HARBOR", ProposalDate: "2024-06-02", Location: "KOCHI", Follow: "RAJ", Status: client.StatusPayment},
		{ID: "3", Group: "DIRECT", Name: "CHERRY MART", ProposalDate: "2025-03-20", Location: "SALEM", Follow: "VIMAL", Status: client.StatusFollowUp},
	}
}

func TestBrowseFilterAndDeleteWithoutRefetch(t *testing.T) {
	s := newStack(t, filepath.Join(t.TempDir(), "state.db"))
	s.srv.Seed(seedClients())
	s.login(t, "lead1", "pw1")
	ctx := context.Background()

	rows, err := s.gw.List(ctx)
	require.NoError(t, err)
	browser := roster.NewBrowser(roster.NewSet(rows))

	// An inactive filter shows nothing until the user asks for something.
	require.Empty(t, browser.View().Rows)

	f := browser.Filter()
	f.Group = "DIRECT"
	browser.SetFilter(f)
	require.Len(t, browser.View().Rows, 2)

	// Delete on the server, then project the deletion into the local set;
	// no second List round-trip.
	require.NoError(t, s.gw.Delete(ctx, "3"))
	browser.Set().ApplyDeleted("3")
	require.Len(t, browser.View().Rows, 1)
	require.Equal(t, "ACME TRADERS", browser.View().Rows[0].Name)
	require.Len(t, s.srv.Rows(), 2)
}

func TestEditedRowLandsInWorkingSet(t *testing.T) {
	s := newStack(t, filepath.Join(t.TempDir(), "state.db"))
	s.srv.Seed(seedClients())
	s.login(t, "lead1", "pw1")
	ctx := context.Background()

	rows, err := s.gw.List(ctx)
	require.NoError(t, err)
	set := roster.NewSet(rows)

	rec, ok := set.Get("2")
	require.True(t, ok)
	rec.Status = client.StatusTryInFuture
	rec.Reason = "revisit next quarter"

	saved, err := s.gw.Update(ctx, rec)
	require.NoError(t, err)
	set.ApplyUpdated(saved)

	got, ok := set.Get("2")
	require.True(t, ok)
	require.Equal(t, client.StatusTryInFuture, got.Status)
	require.Equal(t, "revisit next quarter", got.Reason)
}

func TestCSVImportFlowsThroughBatchSave(t *testing.T) {
	s := newStack(t, filepath.Join(t.TempDir(), "state.db"))
	s.login(t, "lead1", "pw1")
	ctx := context.Background()

	csv := strings.Join([]string{
		"Client Name,Group,Date,City,Phone,File,Status",
		"Delta Spinners,DIRECT,05/02/2025,Erode,+91 9000-11122,yes,PENDING",
		",DIRECT,,,,,",
		"Echo Agro,MEDIATOR GRP,2025-02-10,Theni,9000022233,no,NOT A STATUS",
	}, "\n")

	parsed, err := importer.Parse(csv)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 2)
	require.Equal(t, 1, parsed.Skipped)

	recs := make([]client.Client, len(parsed.Rows))
	for i, row := range parsed.Rows {
		recs[i] = row.Record
	}
	res := s.gw.SaveBatch(ctx, recs)
	require.Equal(t, 2, res.Created())
	require.Empty(t, res.Failed())

	stored := s.srv.Rows()
	require.Len(t, stored, 2)
	require.Equal(t, "Delta Spinners", stored[0].Name)
	require.Equal(t, "2025-02-05", stored[0].ProposalDate)
	require.Equal(t, "91900011122", stored[0].ContactNo)
	require.Equal(t, client.StatusPending, stored[0].Status)
	require.Equal(t, client.DefaultStatus, stored[1].Status, "unknown status falls back")
}

func TestExportGatingByRole(t *testing.T) {
	s := newStack(t, filepath.Join(t.TempDir(), "state.db"))
	s.srv.Seed(seedClients())

	s.login(t, "user1", "pw2")
	staff := s.guard.Current()
	require.True(t, authz.Can(staff, authz.CapView))
	require.True(t, authz.Can(staff, authz.CapCopy))
	require.False(t, authz.Can(staff, authz.CapExport))
	require.False(t, authz.Can(staff, authz.CapDelete))

	s.login(t, "lead1", "pw1")
	lead := s.guard.Current()
	require.True(t, authz.Can(lead, authz.CapExport))

	rows, err := s.gw.List(context.Background())
	require.NoError(t, err)

	f := roster.NewFilter()
	f.Group = "DIRECT"
	filtered := f.Apply(rows)
	require.Len(t, filtered, 2)

	path := filepath.Join(t.TempDir(), export.Filename(f))
	require.Contains(t, export.Filename(f), "group_direct")
	require.NoError(t, export.WriteFile(path, filtered))
}

func TestCopyTextForSelection(t *testing.T) {
	rows := seedClients()
	sel := roster.NewSelection()
	sel.Toggle("1")
	sel.Toggle("3")

	text := export.BulkText(sel.Records(rows))
	blocks := strings.Split(text, "\n\n")
	require.Len(t, blocks, 2)
	require.Contains(t, blocks[0], "NAME: *ACME TRADERS*")
	require.Contains(t, blocks[0], "STATUS: *REJECTED*")
	require.Contains(t, blocks[1], "NAME: *CHERRY MART*")
}
