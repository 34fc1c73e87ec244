// Package statestore persists session state between runs in a small SQLite
// key-value table, so a restart picks up where the last run left off and a
// logout in one process is visible to every other one sharing the file.
package statestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rejectlist/rejectdesk/internal/domain/session"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyLoginTime    = "login_time"
	keyUsername     = "username"
	keyIsTeamLead   = "is_team_lead"
	keyUserType     = "user_type"
	keyLogout       = "logout"
)

// Store is a SQLite-backed session.Store.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) the state database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring state database: %w", err)
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading state key %s: %w", key, err)
	}
	return v, nil
}

func set(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing state key %s: %w", key, err)
	}
	return nil
}

// Load reads the persisted session. Missing keys yield a zero session.
func (s *Store) Load(ctx context.Context) (session.Session, error) {
	var sess session.Session
	var err error
	if sess.Access, err = s.get(ctx, keyAccessToken); err != nil {
		return session.Session{}, err
	}
	if sess.Refresh, err = s.get(ctx, keyRefreshToken); err != nil {
		return session.Session{}, err
	}
	if sess.Username, err = s.get(ctx, keyUsername); err != nil {
		return session.Session{}, err
	}
	if sess.UserType, err = s.get(ctx, keyUserType); err != nil {
		return session.Session{}, err
	}

	lead, err := s.get(ctx, keyIsTeamLead)
	if err != nil {
		return session.Session{}, err
	}
	sess.TeamLead = lead == "true"

	raw, err := s.get(ctx, keyLoginTime)
	if err != nil {
		return session.Session{}, err
	}
	if ms, perr := strconv.ParseInt(raw, 10, 64); perr == nil && ms > 0 {
		sess.IssuedAt = time.UnixMilli(ms)
	}
	return sess, nil
}

// Save persists the session and clears any logout marker.
func (s *Store) Save(ctx context.Context, sess session.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting state transaction: %w", err)
	}
	defer tx.Rollback()

	pairs := map[string]string{
		keyAccessToken:  sess.Access,
		keyRefreshToken: sess.Refresh,
		keyLoginTime:    strconv.FormatInt(sess.IssuedAt.UnixMilli(), 10),
		keyUsername:     sess.Username,
		keyIsTeamLead:   strconv.FormatBool(sess.TeamLead),
		keyUserType:     sess.UserType,
	}
	for k, v := range pairs {
		if err := set(ctx, tx, k, v); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, keyLogout); err != nil {
		return fmt.Errorf("clearing logout marker: %w", err)
	}
	return tx.Commit()
}

// Clear wipes every stored key except the logout marker.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM state WHERE key != ?`, keyLogout)
	if err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	return nil
}

// MarkLogout leaves the marker other processes poll for.
func (s *Store) MarkLogout(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting state transaction: %w", err)
	}
	defer tx.Rollback()
	if err := set(ctx, tx, keyLogout, strconv.FormatInt(time.Now().UnixMilli(), 10)); err != nil {
		return err
	}
	return tx.Commit()
}

// LogoutMark reports whether a logout marker is present.
func (s *Store) LogoutMark(ctx context.Context) (bool, error) {
	v, err := s.get(ctx, keyLogout)
	if err != nil {
		return false, err
	}
	return v != "", nil
}
