// Package testserver runs an in-process stand-in for the reject-list API.
// It issues token pairs, sets the csrftoken cookie at login, and serves an
// in-memory client roster with the same envelopes the real server uses.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

const signingKey = "testserver-signing-key"

// User is a login the server accepts.
type User struct {
	Username string
	Password string
	TeamLead bool
	UserType string
}

// Server is the fake API plus knobs for failure injection.
type Server struct {
	Server *httptest.Server

	mu     sync.Mutex
	users  map[string]User
	rows   []client.Client
	nextID int64

	// ExpireAccessTokens makes every bearer check fail until a refresh
	// mints a new token, exercising the 401-retry path.
	ExpireAccessTokens atomic.Bool
	// FailRefresh rejects token refresh calls.
	FailRefresh atomic.Bool
	// RefreshCalls counts hits on the refresh endpoint.
	RefreshCalls atomic.Int64

	liveTokens map[string]bool
}

// New starts the fake API with a default team lead ("lead1"/"pw1") and a
// regular user ("user1"/"pw2").
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		users: map[string]User{
			"lead1": {Username: "lead1", Password: "pw1", TeamLead: true, UserType: "manager"},
			"user1": {Username: "user1", Password: "pw2", TeamLead: false, UserType: "staff"},
		},
		nextID:     1,
		liveTokens: map[string]bool{},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/login/", s.handleLogin)
	r.Post("/token/refresh/", s.handleRefresh)
	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Get("/check-auth/", s.handleCheckAuth)
		r.Post("/logout/", s.requireCSRF(s.handleLogout))
		r.Get("/clients/", s.handleList)
		r.Post("/clients/", s.requireCSRF(s.handleCreate))
		r.Put("/clients/{id}/", s.requireCSRF(s.handleUpdate))
		r.Delete("/clients/{id}/", s.requireCSRF(s.handleDelete))
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Server.Close)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.Server.URL
}

// Seed replaces the roster.
func (s *Server) Seed(rows []client.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append([]client.Client(nil), rows...)
	for _, rec := range rows {
		var n int64
		if _, err := fmt.Sscanf(string(rec.ID), "%d", &n); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
}

// Rows returns a copy of the roster.
func (s *Server) Rows() []client.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.Client(nil), s.rows...)
}

func (s *Server) mintToken(username string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := tok.SignedString([]byte(signingKey))
	s.mu.Lock()
	s.liveTokens[signed] = true
	s.mu.Unlock()
	return signed
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User string `json:"user"`
		Pw   string `json:"pw"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	u, ok := s.users[req.User]
	if !ok || u.Password != req.Pw {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-" + u.Username, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]any{
		"access":       s.mintToken(u.Username),
		"refresh":      "refresh-" + u.Username,
		"username":     u.Username,
		"is_team_lead": u.TeamLead,
		"user_type":    u.UserType,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.RefreshCalls.Add(1)
	if s.FailRefresh.Load() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token is invalid or expired"})
		return
	}
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.HasPrefix(req.Refresh, "refresh-") {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid refresh token"})
		return
	}
	username := strings.TrimPrefix(req.Refresh, "refresh-")
	s.ExpireAccessTokens.Store(false)
	writeJSON(w, http.StatusOK, map[string]string{"access": s.mintToken(username)})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "authentication credentials were not provided"})
			return
		}
		s.mu.Lock()
		live := s.liveTokens[token]
		s.mu.Unlock()
		if !live || s.ExpireAccessTokens.Load() {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token is invalid or expired"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-CSRFToken")
		cookie, err := r.Cookie("csrftoken")
		if header == "" || err != nil || cookie.Value != header {
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "CSRF verification failed"})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Rows())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var rec client.Client
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(rec.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	s.mu.Lock()
	rec.ID = client.ID(fmt.Sprintf("%d", s.nextID))
	s.nextID++
	rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	rec.UpdatedAt = rec.CreatedAt
	s.rows = append(s.rows, rec)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Client created successfully",
		"data":    rec,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := client.ID(chi.URLParam(r, "id"))
	var rec client.Client
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			rec.ID = id
			rec.CreatedAt = s.rows[i].CreatedAt
			rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			s.rows[i] = rec
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Client updated successfully",
				"data":    rec,
			})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := client.ID(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
