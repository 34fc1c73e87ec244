package gateway_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/testserver"
)

func TestSaveBatchMixedCreateAndUpdate(t *testing.T) {
	srv := testserver.New(t)
	srv.Seed(seedRows())
	gw, _ := loggedInGateway(t, srv, "lead1", "pw1")

	existing := seedRows()[0]
	existing.Status = client.StatusFollowUp

	res := gw.SaveBatch(context.Background(), []client.Client{
		existing,
		{Name: "FRESH ROW", Group: "DIRECT", Status: client.StatusPending},
	})

	require.Equal(t, 1, res.Created())
	require.Equal(t, 1, res.Updated())
	require.Empty(t, res.Failed())

	rows := srv.Rows()
	require.Len(t, rows, 3)
	require.Equal(t, client.StatusFollowUp, rows[0].Status)
}

func TestSaveBatchRejectsNamelessRowBeforeNetwork(t *testing.T) {
	srv := testserver.New(t)
	gw, _ := loggedInGateway(t, srv, "lead1", "pw1")

	res := gw.SaveBatch(context.Background(), []client.Client{
		{Group: "DIRECT"},
		{Name: "  "},
		{Name: "GOOD ROW"},
	})

	require.Equal(t, 1, res.Created())
	require.Equal(t, 0, res.Updated())
	failed := res.Failed()
	require.Len(t, failed, 2)
	require.Equal(t, 0, failed[0].Index)
	require.Equal(t, 1, failed[1].Index)
	require.ErrorContains(t, failed[0].Err, "name is required")
	require.Len(t, srv.Rows(), 1)
}

func TestSaveBatchRowFailureDoesNotStopRest(t *testing.T) {
	srv := testserver.New(t)
	gw, _ := loggedInGateway(t, srv, "lead1", "pw1")

	res := gw.SaveBatch(context.Background(), []client.Client{
		{ID: "999", Name: "MISSING ROW"},
		{Name: "SURVIVOR"},
	})

	failed := res.Failed()
	require.Len(t, failed, 1)
	require.Equal(t, 0, failed[0].Index)
	require.Equal(t, 1, res.Created())
	require.Len(t, srv.Rows(), 1)
}
