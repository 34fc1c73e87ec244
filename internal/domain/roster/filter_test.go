package roster_test

import (
	"testing"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

func sampleRows() []client.Client {
	return []client.Client{
		{ID: "1", Name: "Acme Traders", Group: "JC Chennai", Location: "Chennai", Follow: "Anand", ProposalDate: "2024-03-15", Status: "REJECTED", FileSeen: client.TriYes, Reason: "credit history"},
		{ID: "2", Name: "Beta Mills", Group: "OFFICE", Location: "Madurai", Follow: "Ganesh", ProposalDate: "2023-11-02", Status: "follow up", FileSeen: client.TriNo},
		{ID: "3", Name: "Gamma Exports", Location: "Salem", Status: "Follow   Up"},
		{ID: "4", Name: "Delta Co", Group: "JC Chennai", ProposalDate: "bogus", Status: "PENDING", FileSeen: client.TriYes},
	}
}

func TestFilter_InactiveReturnsNothing(t *testing.T) {
	rows := sampleRows()
	f := roster.NewFilter()
	require.False(t, f.Active())
	require.Empty(t, f.Apply(rows))
}

func TestFilter_QueryProjection(t *testing.T) {
	rows := sampleRows()
	f := roster.NewFilter()

	f.Query = "acme"
	got := f.Apply(rows)
	require.Len(t, got, 1)
	require.Equal(t, client.ID("1"), got[0].ID)

	// reason is part of the projection
	f.Query = "credit"
	require.Len(t, f.Apply(rows), 1)

	// location too
	f.Query = "madurai"
	require.Len(t, f.Apply(rows), 1)

	// id substring match
	f.Query = "3"
	require.Len(t, f.Apply(rows), 1)

	f.Query = "no such thing"
	require.Empty(t, f.Apply(rows))
}

func TestFilter_StatusAnyCasingAndSpacing(t *testing.T) {
	rows := sampleRows()
	f := roster.NewFilter()
	f.Status = "FOLLOW UP"
	got := f.Apply(rows)
	require.Len(t, got, 2)
	require.Equal(t, client.ID("2"), got[0].ID)
	require.Equal(t, client.ID("3"), got[1].ID)
}

func TestFilter_UnknownBuckets(t *testing.T) {
	rows := sampleRows()

	f := roster.NewFilter()
	f.Year = client.Unknown
	got := f.Apply(rows)
	require.Len(t, got, 2) // missing date and unparseable date

	f = roster.NewFilter()
	f.Group = client.Unknown
	require.Len(t, f.Apply(rows), 1)

	f = roster.NewFilter()
	f.FileSeen = client.Unknown
	require.Len(t, f.Apply(rows), 1)
}

func TestFilter_FacetsCombineWithAnd(t *testing.T) {
	rows := sampleRows()
	f := roster.NewFilter()
	f.Group = "JC CHENNAI"
	require.Len(t, f.Apply(rows), 2)

	f.Year = "2024"
	got := f.Apply(rows)
	require.Len(t, got, 1)
	require.Equal(t, client.ID("1"), got[0].ID)

	f.Query = "delta"
	require.Empty(t, f.Apply(rows))
}

func TestFilter_YearAndMonth(t *testing.T) {
	rows := sampleRows()
	f := roster.NewFilter()
	f.Month = "NOV"
	got := f.Apply(rows)
	require.Len(t, got, 1)
	require.Equal(t, client.ID("2"), got[0].ID)
}
