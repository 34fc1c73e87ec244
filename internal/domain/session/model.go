// Package session owns the client-local credential state and the guard that
// keeps it valid: age checks, single-flight refresh, scheduled re-checks and
// the logout broadcast other dashboards observe.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTTL is how long an access credential is trusted after issue.
const AccessTTL = time.Hour

// RefreshInterval is how often the background check runs; shorter than
// AccessTTL so an active session refreshes before it expires.
const RefreshInterval = 50 * time.Minute

// Session is the client-local session state persisted between runs.
type Session struct {
	Access   string
	Refresh  string
	IssuedAt time.Time
	Username string
	TeamLead bool
	UserType string
}

// Valid reports whether a session holds an access credential at all.
func (s Session) Valid() bool { return s.Access != "" }

// Age returns how long ago the access credential was issued.
func (s Session) Age(now time.Time) time.Duration { return now.Sub(s.IssuedAt) }

// Stale reports whether the access credential should no longer be trusted:
// older than AccessTTL, or past the exp claim when the credential is a JWT.
func (s Session) Stale(now time.Time) bool {
	if !s.Valid() {
		return true
	}
	if s.Age(now) > AccessTTL {
		return true
	}
	if exp, ok := s.tokenExpiry(); ok && now.After(exp) {
		return true
	}
	return false
}

// tokenExpiry reads the exp claim from the access credential without
// verifying the signature. Only the server can verify; the claim is used
// purely as an earlier staleness hint.
func (s Session) tokenExpiry() (time.Time, bool) {
	var claims jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.Access, &claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Store persists session state across runs: the terminal analog of the
// browser's session-scoped storage, including the logout broadcast marker
// other dashboard processes poll.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, sess Session) error
	Clear(ctx context.Context) error
	MarkLogout(ctx context.Context) error
	LogoutMark(ctx context.Context) (bool, error)
}

// Refresher exchanges a refresh credential for a new access credential.
// The gateway implements it against POST /token/refresh/.
type Refresher interface {
	RefreshAccess(ctx context.Context, refresh string) (string, error)
}
