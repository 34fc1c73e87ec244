// Package gateway is the HTTP client for the reject-list API. It speaks the
// server's JSON dialect, echoes the csrftoken cookie on mutations, and
// retries exactly once with a refreshed access token after a 401.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/session"
)

const csrfCookie = "csrftoken"

// TokenSource supplies bearer tokens for authenticated requests and can
// force a refresh after the server rejects one.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	ForceRefresh(ctx context.Context) error
}

// Gateway talks to one reject-list API server.
type Gateway struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// New creates an unauthenticated gateway. The cookie jar holds the
// csrftoken cookie the server sets at login.
func New(baseURL string, logger *slog.Logger) (*Gateway, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// SetTokenSource wires in the token supplier. The gateway is built before
// the session guard because the guard needs the gateway as its refresher.
func (g *Gateway) SetTokenSource(ts TokenSource) {
	g.tokens = ts
}

type loginRequest struct {
	User string `json:"user"`
	Pw   string `json:"pw"`
}

type loginResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Username string `json:"username"`
	TeamLead bool   `json:"is_team_lead"`
	UserType string `json:"user_type"`
	Error    string `json:"error"`
	Detail   string `json:"detail"`
}

// Login exchanges credentials for a token pair. On success the server also
// sets the csrftoken cookie in the jar.
func (g *Gateway) Login(ctx context.Context, username, password string) (session.Session, error) {
	body, err := json.Marshal(loginRequest{User: username, Pw: password})
	if err != nil {
		return session.Session{}, fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/login/", bytes.NewReader(body))
	if err != nil {
		return session.Session{}, fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return session.Session{}, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Session{}, fmt.Errorf("reading login response: %w", err)
	}

	var lr loginResponse
	if err := json.Unmarshal(raw, &lr); err != nil && resp.StatusCode < 300 {
		return session.Session{}, fmt.Errorf("decoding login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := lr.Error
		if msg == "" {
			msg = lr.Detail
		}
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return session.Session{}, &APIError{Status: resp.StatusCode, Body: msg}
	}

	g.logger.Info("logged in", "username", lr.Username, "user_type", lr.UserType)
	return session.Session{
		Access:   lr.Access,
		Refresh:  lr.Refresh,
		Username: lr.Username,
		TeamLead: lr.TeamLead,
		UserType: lr.UserType,
	}, nil
}

// RefreshAccess trades a refresh token for a new access token.
func (g *Gateway) RefreshAccess(ctx context.Context, refresh string) (string, error) {
	body, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", fmt.Errorf("encoding refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/token/refresh/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if out.Access == "" {
		return "", &APIError{Status: resp.StatusCode, Body: "refresh response missing access token"}
	}
	return out.Access, nil
}

// CheckAuth verifies the current access token with the server.
func (g *Gateway) CheckAuth(ctx context.Context) error {
	_, err := g.do(ctx, http.MethodGet, "/check-auth/", nil, false)
	return err
}

// Logout tells the server to end the session. Local teardown is the
// session guard's job.
func (g *Gateway) Logout(ctx context.Context) error {
	_, err := g.do(ctx, http.MethodPost, "/logout/", nil, true)
	return err
}

// List fetches the entire client roster.
func (g *Gateway) List(ctx context.Context) ([]client.Client, error) {
	raw, err := g.do(ctx, http.MethodGet, "/clients/", nil, false)
	if err != nil {
		return nil, err
	}
	var rows []client.Client
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decoding client list: %w", err)
	}
	return rows, nil
}

// Create adds a new client record and returns the stored row.
func (g *Gateway) Create(ctx context.Context, rec client.Client) (client.Client, error) {
	body, err := json.Marshal(mutationPayload(rec))
	if err != nil {
		return client.Client{}, fmt.Errorf("encoding client: %w", err)
	}
	raw, err := g.do(ctx, http.MethodPost, "/clients/", body, true)
	if err != nil {
		return client.Client{}, err
	}
	return decodeRecord(raw)
}

// Update rewrites an existing client record and returns the stored row.
func (g *Gateway) Update(ctx context.Context, rec client.Client) (client.Client, error) {
	if rec.ID == "" {
		return client.Client{}, fmt.Errorf("update requires a record id")
	}
	body, err := json.Marshal(mutationPayload(rec))
	if err != nil {
		return client.Client{}, fmt.Errorf("encoding client: %w", err)
	}
	raw, err := g.do(ctx, http.MethodPut, "/clients/"+url.PathEscape(string(rec.ID))+"/", body, true)
	if err != nil {
		return client.Client{}, err
	}
	return decodeRecord(raw)
}

// Delete removes a client record. The server answers 204 with no body.
func (g *Gateway) Delete(ctx context.Context, id client.ID) error {
	if id == "" {
		return fmt.Errorf("delete requires a record id")
	}
	_, err := g.do(ctx, http.MethodDelete, "/clients/"+url.PathEscape(string(id))+"/", nil, true)
	return err
}

// envelope is the server's mutation response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeRecord(raw []byte) (client.Client, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	var rec client.Client
	if err := json.Unmarshal(raw, &rec); err != nil {
		return client.Client{}, fmt.Errorf("decoding client record: %w", err)
	}
	return rec, nil
}

// mutationPayload shapes a record for create/update: blank optional fields
// go out as null, contact stays a digit string, and file_seen is YES/NO.
func mutationPayload(rec client.Client) map[string]any {
	return map[string]any{
		"group":         nullable(rec.Group),
		"name":          nullable(rec.Name),
		"proposal_date": nullable(rec.ProposalDate),
		"location":      nullable(rec.Location),
		"follow":        nullable(rec.Follow),
		"proprietor":    nullable(rec.Proprietor),
		"mediator":      nullable(rec.Mediator),
		"contact_no":    nullable(rec.ContactNo),
		"file_seen":     fileSeenPayload(rec.FileSeen),
		"status":        nullable(string(rec.Status)),
		"reason":        nullable(rec.Reason),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func fileSeenPayload(t client.TriState) string {
	if t == client.TriYes {
		return "YES"
	}
	return "NO"
}

// do runs one authenticated request, replaying it once with a fresh token
// if the first attempt comes back 401.
func (g *Gateway) do(ctx context.Context, method, path string, body []byte, mutation bool) ([]byte, error) {
	raw, err := g.doOnce(ctx, method, path, body, mutation)
	if err == nil || !IsStatus(err, http.StatusUnauthorized) || g.tokens == nil {
		return raw, err
	}

	g.logger.Debug("unauthorized response, refreshing token", "method", method, "path", path)
	if rerr := g.tokens.ForceRefresh(ctx); rerr != nil {
		return nil, rerr
	}
	return g.doOnce(ctx, method, path, body, mutation)
}

func (g *Gateway) doOnce(ctx context.Context, method, path string, body []byte, mutation bool) ([]byte, error) {
	var csrf string
	if mutation {
		csrf = g.csrfToken()
		if csrf == "" {
			return nil, ErrMissingCSRF
		}
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if csrf != "" {
		req.Header.Set("X-CSRFToken", csrf)
	}
	if g.tokens != nil {
		token, err := g.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

func (g *Gateway) csrfToken() string {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return ""
	}
	for _, c := range g.http.Jar.Cookies(u) {
		if c.Name == csrfCookie {
			return c.Value
		}
	}
	return ""
}
