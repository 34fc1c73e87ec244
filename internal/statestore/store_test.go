package statestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rejectlist/rejectdesk/internal/domain/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadEmptyStore(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.Load(context.Background())
	require.NoError(t, err)
	require.False(t, sess.Valid())
	require.True(t, sess.IssuedAt.IsZero())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	issued := time.Now().Truncate(time.Millisecond)

	in := session.Session{
		Access:   "acc",
		Refresh:  "ref",
		IssuedAt: issued,
		Username: "lead1",
		TeamLead: true,
		UserType: "manager",
	}
	require.NoError(t, s.Save(context.Background(), in))

	out, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "acc", out.Access)
	require.Equal(t, "ref", out.Refresh)
	require.Equal(t, "lead1", out.Username)
	require.True(t, out.TeamLead)
	require.Equal(t, "manager", out.UserType)
	require.True(t, out.IssuedAt.Equal(issued))
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, session.Session{Access: "a1", Username: "u", IssuedAt: time.Now()}))
	require.NoError(t, s.Save(ctx, session.Session{Access: "a2", Username: "u", IssuedAt: time.Now()}))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "a2", out.Access)
}

func TestClearAndLogoutMarker(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, session.Session{Access: "acc", Username: "u", IssuedAt: time.Now()}))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.MarkLogout(ctx))

	sess, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, sess.Valid())

	marked, err := s.LogoutMark(ctx)
	require.NoError(t, err)
	require.True(t, marked)

	// A fresh login clears the marker.
	require.NoError(t, s.Save(ctx, session.Session{Access: "new", Username: "u", IssuedAt: time.Now()}))
	marked, err = s.LogoutMark(ctx)
	require.NoError(t, err)
	require.False(t, marked)
}

func TestTwoStoresShareOneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	a, err := New(path)
	require.NoError(t, err)
	defer a.Close()
	b, err := New(path)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save(ctx, session.Session{Access: "acc", Username: "u", IssuedAt: time.Now()}))
	require.NoError(t, a.MarkLogout(ctx))

	marked, err := b.LogoutMark(ctx)
	require.NoError(t, err)
	require.True(t, marked)
}
