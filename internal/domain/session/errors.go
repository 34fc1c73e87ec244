package session

import "errors"

var (
	// ErrNotAuthenticated indicates no session has been established.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired indicates the access credential was stale and the
	// refresh attempt failed; the session has been cleared.
	ErrSessionExpired = errors.New("session expired")
	// ErrNoRefreshCredential indicates a refresh was needed but no refresh
	// credential is stored.
	ErrNoRefreshCredential = errors.New("no refresh credential")
)
