package roster_test

import (
	"fmt"
	"testing"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

func makeRows(n int) []client.Client {
	rows := make([]client.Client, n)
	for i := range rows {
		rows[i] = client.Client{ID: client.ID(fmt.Sprintf("r%03d", i)), Name: fmt.Sprintf("Client %d", i)}
	}
	return rows
}

func TestPaginate_PageCountIsCeil(t *testing.T) {
	cases := []struct {
		n, size, pages int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{45, 20, 3},
		{100, 50, 2},
	}
	for _, tc := range cases {
		v := roster.Paginate(makeRows(tc.n), 1, tc.size)
		require.Equal(t, tc.pages, v.Pages, "n=%d size=%d", tc.n, tc.size)
	}
}

func TestPaginate_ClampsPage(t *testing.T) {
	rows := makeRows(25)

	v := roster.Paginate(rows, 99, 10)
	require.Equal(t, 3, v.Page)
	require.Len(t, v.Rows, 5)
	require.Equal(t, 21, v.Start)
	require.Equal(t, 25, v.End)

	v = roster.Paginate(rows, 0, 10)
	require.Equal(t, 1, v.Page)
	require.Len(t, v.Rows, 10)
}

func TestPaginate_EmptySet(t *testing.T) {
	v := roster.Paginate(nil, 3, 10)
	require.Equal(t, 1, v.Page)
	require.Equal(t, 1, v.Pages)
	require.Zero(t, v.Start)
	require.Zero(t, v.End)
	require.Empty(t, v.Rows)
}

func TestPaginate_SliceBounds(t *testing.T) {
	rows := makeRows(23)
	v := roster.Paginate(rows, 2, 10)
	require.Equal(t, client.ID("r010"), v.Rows[0].ID)
	require.Equal(t, client.ID("r019"), v.Rows[9].ID)
}
