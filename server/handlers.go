package server

import (
	"log/slog"
	"net/http"

	"github.com/Anggahrm/biolink/internal/models"
)

func (s *Server) renderError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmplFunc(w, "error.html", nil); err != nil {
		slog.Error("Failed to render error template", "error", err)
	}
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadIndexPage(r.Context())
	if err != nil {
		slog.Error("Failed to load page content", "error", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmplFunc(w, "index.html", data); err != nil {
		slog.Error("Failed to render index template", "error", err)
	}
}

func (s *Server) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.authenticated(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmplFunc(w, "login.html", nil); err != nil {
		slog.Error("Failed to render login template", "error", err)
	}
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	valid, err := s.db.VerifyPassword(r.Context(), password)
	if err != nil {
		slog.Error("Failed to verify password", "error", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	if !valid {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.tmplFunc(w, "login.html", map[string]string{"Error": "Invalid password"}); err != nil {
			slog.Error("Failed to render login template", "error", err)
		}
		return
	}

	if err := s.createSession(w, r); err != nil {
		slog.Error("Failed to create session", "error", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	content, err := s.loadContent(r.Context(), false)
	if err != nil {
		slog.Error("Failed to load admin content", "error", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	data := models.AdminPageData{
		Profile: content.Profile,
		Links:   content.Links,
		Tracks:  content.Tracks,
		Message: r.URL.Query().Get("message"),
		Error:   r.URL.Query().Get("error"),
		Version: s.version,

		Icons:      models.IconNames,
		Categories: models.Categories,
		Colors:     models.ColorPresets,
	}
	for _, l := range content.Links {
		if l.IsActive {
			data.ActiveLinks++
		}
	}
	for _, t := range content.Tracks {
		if t.IsActive {
			data.ActiveMusic++
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmplFunc(w, "admin.html", data); err != nil {
		slog.Error("Failed to render admin template", "error", err)
	}
}
