package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"
)

const sessionCookie = "admin_session"

func newSessionToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// createSession persists a fresh token and sets it on w as the session cookie.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) error {
	token, err := newSessionToken()
	if err != nil {
		return err
	}
	if err := s.db.CreateSession(r.Context(), token, s.sessionTTL); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		MaxAge:   int(s.sessionTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Server) clearSession(w http.ResponseWriter, r *http.Request) {
	if token := getSessionFromRequest(r); token != "" {
		if err := s.db.DeleteSession(r.Context(), token); err != nil {
			slog.Error("Failed to delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

func getSessionFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// authenticated reports whether r carries a live session. Store failures
// count as anonymous.
func (s *Server) authenticated(r *http.Request) bool {
	token := getSessionFromRequest(r)
	if token == "" {
		return false
	}
	ok, err := s.db.ValidateSession(r.Context(), token)
	if err != nil {
		slog.Error("Failed to validate session", "error", err)
		return false
	}
	return ok
}

func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticated(r) {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAPIAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticated(r) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PurgeSessions deletes expired sessions every interval until ctx is done.
func (s *Server) PurgeSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.db.PurgeExpiredSessions(ctx)
			if err != nil {
				slog.Error("Failed to purge sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("Purged expired sessions", "count", n)
			}
		}
	}
}
