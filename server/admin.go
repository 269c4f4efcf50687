package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Anggahrm/biolink/internal/database"
	"github.com/Anggahrm/biolink/internal/models"
)

const minPasswordLength = 6

// adminRedirect sends the browser back to the dashboard with a flash message
// under key ("message" or "error").
func adminRedirect(w http.ResponseWriter, r *http.Request, key, text string) {
	http.Redirect(w, r, "/admin?"+url.Values{key: {text}}.Encode(), http.StatusSeeOther)
}

// adminResult redirects with message when err is nil and with a description
// of err otherwise. Unexpected errors are logged.
func adminResult(w http.ResponseWriter, r *http.Request, err error, noun, action, message string) {
	switch {
	case err == nil:
		adminRedirect(w, r, "message", message)
	case errors.Is(err, database.ErrNotFound):
		adminRedirect(w, r, "error", noun+" not found")
	case errors.Is(err, models.ErrValidation):
		adminRedirect(w, r, "error", err.Error())
	default:
		slog.Error("Failed to "+action, "error", err)
		adminRedirect(w, r, "error", "Failed to "+action)
	}
}

// formField returns the trimmed value of key, or nil when the form omits it.
func formField(r *http.Request, key string) *string {
	if !r.PostForm.Has(key) {
		return nil
	}
	v := strings.TrimSpace(r.PostForm.Get(key))
	return &v
}

func formOrder(r *http.Request) (*int, error) {
	v := formField(r, "order")
	if v == nil || *v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil, fmt.Errorf("%w: order must be a number", models.ErrValidation)
	}
	return &n, nil
}

func formActive(r *http.Request) *bool {
	active := r.PostForm.Get("isActive") == "true"
	return &active
}

func formLinkPatch(r *http.Request) (models.LinkPatch, error) {
	if err := r.ParseForm(); err != nil {
		return models.LinkPatch{}, fmt.Errorf("%w: invalid form", models.ErrValidation)
	}
	order, err := formOrder(r)
	if err != nil {
		return models.LinkPatch{}, err
	}
	return models.LinkPatch{
		Title:    formField(r, "title"),
		URL:      formField(r, "url"),
		Icon:     formField(r, "icon"),
		Category: formField(r, "category"),
		Color:    formField(r, "color"),
		Order:    order,
	}, nil
}

func formTrackPatch(r *http.Request) (models.TrackPatch, error) {
	if err := r.ParseForm(); err != nil {
		return models.TrackPatch{}, fmt.Errorf("%w: invalid form", models.ErrValidation)
	}
	order, err := formOrder(r)
	if err != nil {
		return models.TrackPatch{}, err
	}
	return models.TrackPatch{
		Title:    formField(r, "title"),
		Artist:   formField(r, "artist"),
		URL:      formField(r, "url"),
		CoverURL: formField(r, "coverUrl"),
		Order:    order,
	}, nil
}

func (s *Server) HandleAddLink(w http.ResponseWriter, r *http.Request) {
	p, err := formLinkPatch(r)
	if err != nil {
		adminResult(w, r, err, "Link", "add link", "")
		return
	}
	p.IsActive = formActive(r)
	if p.Order == nil {
		links, err := s.db.ListLinks(r.Context(), database.ListOptions{})
		if err != nil {
			adminResult(w, r, err, "Link", "add link", "")
			return
		}
		n := len(links)
		p.Order = &n
	}

	link, err := models.NewLink(p)
	if err == nil {
		_, err = s.db.CreateLink(r.Context(), link)
	}
	adminResult(w, r, err, "Link", "add link", "Link added")
}

func (s *Server) HandleUpdateLink(w http.ResponseWriter, r *http.Request) {
	p, err := formLinkPatch(r)
	if err == nil {
		err = p.Validate()
	}
	if err == nil {
		_, err = s.db.UpdateLink(r.Context(), chi.URLParam(r, "id"), p)
	}
	adminResult(w, r, err, "Link", "update link", "Link updated")
}

func (s *Server) HandleToggleLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	link, err := s.db.GetLink(r.Context(), id)
	if err != nil {
		adminResult(w, r, err, "Link", "update link", "")
		return
	}
	active := !link.IsActive
	_, err = s.db.UpdateLink(r.Context(), id, models.LinkPatch{IsActive: &active})
	adminResult(w, r, err, "Link", "update link", visibilityMessage("Link", active))
}

func (s *Server) HandleDeleteLink(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteLink(r.Context(), chi.URLParam(r, "id"))
	adminResult(w, r, err, "Link", "delete link", "Link deleted")
}

func (s *Server) HandleAddTrack(w http.ResponseWriter, r *http.Request) {
	p, err := formTrackPatch(r)
	if err != nil {
		adminResult(w, r, err, "Track", "add track", "")
		return
	}
	p.IsActive = formActive(r)
	if p.Order == nil {
		tracks, err := s.db.ListTracks(r.Context(), database.ListOptions{})
		if err != nil {
			adminResult(w, r, err, "Track", "add track", "")
			return
		}
		n := len(tracks)
		p.Order = &n
	}

	track, err := models.NewTrack(p)
	if err == nil {
		_, err = s.db.CreateTrack(r.Context(), track)
	}
	adminResult(w, r, err, "Track", "add track", "Track added")
}

func (s *Server) HandleUpdateTrack(w http.ResponseWriter, r *http.Request) {
	p, err := formTrackPatch(r)
	if err == nil {
		err = p.Validate()
	}
	if err == nil {
		_, err = s.db.UpdateTrack(r.Context(), chi.URLParam(r, "id"), p)
	}
	adminResult(w, r, err, "Track", "update track", "Track updated")
}

func (s *Server) HandleToggleTrack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	track, err := s.db.GetTrack(r.Context(), id)
	if err != nil {
		adminResult(w, r, err, "Track", "update track", "")
		return
	}
	active := !track.IsActive
	_, err = s.db.UpdateTrack(r.Context(), id, models.TrackPatch{IsActive: &active})
	adminResult(w, r, err, "Track", "update track", visibilityMessage("Track", active))
}

func (s *Server) HandleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteTrack(r.Context(), chi.URLParam(r, "id"))
	adminResult(w, r, err, "Track", "delete track", "Track deleted")
}

func (s *Server) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		adminRedirect(w, r, "error", "Invalid form")
		return
	}
	p := models.ProfilePatch{
		Name:      formField(r, "name"),
		Bio:       formField(r, "bio"),
		AvatarURL: formField(r, "avatarUrl"),
	}
	err := p.Validate()
	if err == nil {
		_, err = s.db.UpdateProfile(r.Context(), p)
	}
	adminResult(w, r, err, "Profile", "update profile", "Profile updated")
}

func (s *Server) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	newPassword := r.FormValue("new_password")

	if len(newPassword) < minPasswordLength {
		adminRedirect(w, r, "error", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		return
	}
	if newPassword != r.FormValue("confirm_password") {
		adminRedirect(w, r, "error", "Passwords do not match")
		return
	}

	err := s.db.SetPassword(r.Context(), newPassword)
	adminResult(w, r, err, "Credential", "update password", "Password updated")
}

func visibilityMessage(noun string, active bool) string {
	if active {
		return noun + " shown"
	}
	return noun + " hidden"
}
