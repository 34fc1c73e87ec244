package client_test

import (
	"encoding/json"
	"testing"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"REJECTED", "REJECTED"},
		{"follow up", "FOLLOW UP"},
		{"Follow   Up", "FOLLOW UP"},
		{"  follow\tup  ", "FOLLOW UP"},
		{"", "UNKNOWN"},
		{"   ", "UNKNOWN"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, client.NormalizeStatus(tc.in), "input %q", tc.in)
	}
}

func TestParseStatus_FallsBackToDefault(t *testing.T) {
	require.Equal(t, client.StatusFollowUp, client.ParseStatus("follow up"))
	require.Equal(t, client.StatusTryInFuture, client.ParseStatus("try in future"))
	require.Equal(t, client.DefaultStatus, client.ParseStatus("RANDOM"))
	require.Equal(t, client.DefaultStatus, client.ParseStatus(""))
}

func TestDigits(t *testing.T) {
	require.Equal(t, "919876543210", client.Digits("+91 98765-43210"))
	require.Equal(t, "", client.Digits("no digits"))
	require.Equal(t, "42", client.Digits("42"))
}

func TestYearMonthBuckets(t *testing.T) {
	c := client.Client{ProposalDate: "2024-03-15"}
	require.Equal(t, "2024", c.Year())
	require.Equal(t, "MAR", c.Month3())
	require.Equal(t, "15/03/2024", c.ProposalDMY())

	iso := client.Client{ProposalDate: "2025-12-01T00:00:00Z"}
	require.Equal(t, "2025", iso.Year())
	require.Equal(t, "DEC", iso.Month3())

	blank := client.Client{}
	require.Equal(t, client.Unknown, blank.Year())
	require.Equal(t, client.Unknown, blank.Month3())

	junk := client.Client{ProposalDate: "not-a-date"}
	require.Equal(t, client.Unknown, junk.Year())
	require.Equal(t, client.Unknown, junk.Month3())
}

func TestTriStateJSON(t *testing.T) {
	cases := []struct {
		raw  string
		want client.TriState
	}{
		{`true`, client.TriYes},
		{`false`, client.TriNo},
		{`"YES"`, client.TriYes},
		{`"no"`, client.TriNo},
		{`null`, client.TriUnknown},
		{`"maybe"`, client.TriUnknown},
	}
	for _, tc := range cases {
		var got client.TriState
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &got), "raw %s", tc.raw)
		require.Equal(t, tc.want, got, "raw %s", tc.raw)
	}

	b, err := json.Marshal(client.TriYes)
	require.NoError(t, err)
	require.Equal(t, `"YES"`, string(b))
	b, err = json.Marshal(client.TriUnknown)
	require.NoError(t, err)
	require.Equal(t, `null`, string(b))
}

func TestIDJSON(t *testing.T) {
	var c client.Client
	require.NoError(t, json.Unmarshal([]byte(`{"id": 17, "name": "A"}`), &c))
	require.Equal(t, client.ID("17"), c.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc", "name": "A"}`), &c))
	require.Equal(t, client.ID("abc"), c.ID)
}

func TestIsEmpty(t *testing.T) {
	require.True(t, client.Client{Status: client.DefaultStatus}.IsEmpty())
	require.False(t, client.Client{Name: "A", Status: client.DefaultStatus}.IsEmpty())
	require.False(t, client.Client{Status: client.StatusPending}.IsEmpty())
	require.False(t, client.Client{Status: client.DefaultStatus, FileSeen: client.TriYes}.IsEmpty())
}
