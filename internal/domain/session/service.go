package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// refreshKey coalesces concurrent refresh attempts into one network call.
const refreshKey = "refresh"

// Guard owns the live session: it restores it from the store on startup,
// keeps the access token fresh, and tears everything down on logout.
type Guard struct {
	mu        sync.Mutex
	sess      Session
	store     Store
	refresher Refresher
	bcast     *Broadcaster
	logger    *slog.Logger
	sf        singleflight.Group
	now       func() time.Time
}

// NewGuard creates a session guard.
func NewGuard(store Store, refresher Refresher, bcast *Broadcaster, logger *slog.Logger) *Guard {
	return &Guard{
		store:     store,
		refresher: refresher,
		bcast:     bcast,
		logger:    logger,
		now:       time.Now,
	}
}

// Restore loads the persisted session, if any. A missing session is not an
// error; callers check Current().Valid().
func (g *Guard) Restore(ctx context.Context) error {
	sess, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	g.mu.Lock()
	g.sess = sess
	g.mu.Unlock()
	if sess.Valid() {
		g.logger.Debug("session restored", "username", sess.Username, "age", sess.Age(g.now()))
	}
	return nil
}

// Establish installs a freshly issued session and persists it.
func (g *Guard) Establish(ctx context.Context, sess Session) error {
	sess.IssuedAt = g.now()
	if err := g.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	g.mu.Lock()
	g.sess = sess
	g.mu.Unlock()
	g.bcast.Reset()
	g.logger.Info("session established", "username", sess.Username, "team_lead", sess.TeamLead)
	return nil
}

// Current returns a copy of the live session.
func (g *Guard) Current() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess
}

// Token returns an access token that is valid right now, refreshing first
// when the current one has gone stale.
func (g *Guard) Token(ctx context.Context) (string, error) {
	if err := g.EnsureValid(ctx); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess.Access, nil
}

// EnsureValid refreshes the access token if it is stale or missing while a
// refresh credential is still held. Concurrent callers share one refresh. A
// failed refresh clears the session and returns ErrSessionExpired.
func (g *Guard) EnsureValid(ctx context.Context) error {
	g.mu.Lock()
	sess := g.sess
	g.mu.Unlock()

	if !sess.Valid() {
		if sess.Refresh == "" {
			return ErrNotAuthenticated
		}
		return g.refresh(ctx)
	}
	if !sess.Stale(g.now()) {
		return nil
	}
	return g.refresh(ctx)
}

// ForceRefresh replaces the access token unconditionally. The transport
// layer calls this after a 401 so the retry carries a new token.
func (g *Guard) ForceRefresh(ctx context.Context) error {
	g.mu.Lock()
	valid := g.sess.Valid()
	g.mu.Unlock()
	if !valid {
		return ErrNotAuthenticated
	}
	return g.refresh(ctx)
}

func (g *Guard) refresh(ctx context.Context) error {
	_, err, _ := g.sf.Do(refreshKey, func() (any, error) {
		g.mu.Lock()
		sess := g.sess
		g.mu.Unlock()
		if sess.Refresh == "" {
			return nil, ErrNoRefreshCredential
		}

		access, err := g.refresher.RefreshAccess(ctx, sess.Refresh)
		if err != nil {
			g.logger.Warn("token refresh failed", "error", err)
			if lerr := g.Logout(ctx); lerr != nil {
				g.logger.Warn("logout after failed refresh", "error", lerr)
			}
			return nil, fmt.Errorf("refreshing access token: %w", ErrSessionExpired)
		}

		g.mu.Lock()
		g.sess.Access = access
		g.sess.IssuedAt = g.now()
		sess = g.sess
		g.mu.Unlock()

		if err := g.store.Save(ctx, sess); err != nil {
			g.logger.Warn("persisting refreshed session", "error", err)
		}
		g.logger.Debug("access token refreshed", "username", sess.Username)
		return nil, nil
	})
	return err
}

// Logout clears the session everywhere: local state, the persisted store,
// and every subscribed surface via the broadcaster. It also leaves the
// logout marker other processes poll for.
func (g *Guard) Logout(ctx context.Context) error {
	g.mu.Lock()
	g.sess = Session{}
	g.mu.Unlock()

	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session store: %w", err)
	}
	if err := g.store.MarkLogout(ctx); err != nil {
		g.logger.Warn("writing logout marker", "error", err)
	}
	g.bcast.Publish()
	g.logger.Info("session cleared")
	return nil
}

// WakeCheck re-validates the session after the UI regains focus. A stale
// token is refreshed immediately instead of waiting for the next tick.
func (g *Guard) WakeCheck(ctx context.Context) error {
	g.mu.Lock()
	sess := g.sess
	g.mu.Unlock()
	if !sess.Valid() {
		return nil
	}
	if !sess.Stale(g.now()) {
		return nil
	}
	g.logger.Debug("stale session on wake, refreshing")
	return g.refresh(ctx)
}

// Run drives the background maintenance loop: a periodic proactive refresh
// and a poll of the logout marker so a logout in one process ends the
// session in every other. It returns when ctx is cancelled.
func (g *Guard) Run(ctx context.Context) {
	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()
	poll := time.NewTicker(2 * time.Second)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.mu.Lock()
			valid := g.sess.Valid()
			g.mu.Unlock()
			if !valid {
				continue
			}
			if err := g.refresh(ctx); err != nil {
				g.logger.Warn("scheduled refresh failed", "error", err)
			}
		case <-poll.C:
			g.mu.Lock()
			valid := g.sess.Valid()
			g.mu.Unlock()
			if !valid {
				continue
			}
			marked, err := g.store.LogoutMark(ctx)
			if err != nil {
				g.logger.Warn("reading logout marker", "error", err)
				continue
			}
			if marked {
				g.logger.Info("logout marker observed, ending session")
				g.mu.Lock()
				g.sess = Session{}
				g.mu.Unlock()
				g.bcast.Publish()
			}
		}
	}
}
