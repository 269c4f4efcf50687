package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anggahrm/biolink/internal/database"
	"github.com/Anggahrm/biolink/internal/models"
)

const maxBodyBytes = 1 << 20

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// storeError maps a store or validation error onto a response. Unexpected
// errors are logged and reported with an opaque message.
func storeError(w http.ResponseWriter, err error, noun, action string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, noun+" not found")
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Failed to "+action, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

func (s *Server) apiListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.db.ListLinks(r.Context(), database.ListOptions{ActiveOnly: true})
	if err != nil {
		storeError(w, err, "Link", "fetch links")
		return
	}
	if links == nil {
		links = []models.Link{}
	}
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) apiGetLink(w http.ResponseWriter, r *http.Request) {
	link, err := s.db.GetLink(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "Link", "fetch link")
		return
	}
	if !link.IsActive && !s.authenticated(r) {
		writeError(w, http.StatusNotFound, "Link not found")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (s *Server) apiCreateLink(w http.ResponseWriter, r *http.Request) {
	var p models.LinkPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	link, err := models.NewLink(p)
	if err != nil {
		storeError(w, err, "Link", "create link")
		return
	}
	link, err = s.db.CreateLink(r.Context(), link)
	if err != nil {
		storeError(w, err, "Link", "create link")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (s *Server) apiUpdateLink(w http.ResponseWriter, r *http.Request) {
	var p models.LinkPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		storeError(w, err, "Link", "update link")
		return
	}
	link, err := s.db.UpdateLink(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		storeError(w, err, "Link", "update link")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (s *Server) apiDeleteLink(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteLink(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, err, "Link", "delete link")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) apiListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.db.ListTracks(r.Context(), database.ListOptions{ActiveOnly: true})
	if err != nil {
		storeError(w, err, "Track", "fetch music")
		return
	}
	if tracks == nil {
		tracks = []models.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) apiGetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := s.db.GetTrack(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "Track", "fetch track")
		return
	}
	if !track.IsActive && !s.authenticated(r) {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}
	writeJSON(w, http.StatusOK, track)
}

func (s *Server) apiCreateTrack(w http.ResponseWriter, r *http.Request) {
	var p models.TrackPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	track, err := models.NewTrack(p)
	if err != nil {
		storeError(w, err, "Track", "create track")
		return
	}
	track, err = s.db.CreateTrack(r.Context(), track)
	if err != nil {
		storeError(w, err, "Track", "create track")
		return
	}
	writeJSON(w, http.StatusOK, track)
}

func (s *Server) apiUpdateTrack(w http.ResponseWriter, r *http.Request) {
	var p models.TrackPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		storeError(w, err, "Track", "update track")
		return
	}
	track, err := s.db.UpdateTrack(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		storeError(w, err, "Track", "update track")
		return
	}
	writeJSON(w, http.StatusOK, track)
}

func (s *Server) apiDeleteTrack(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteTrack(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, err, "Track", "delete track")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// apiGetProfile answers null when the profile row is absent.
func (s *Server) apiGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.db.GetProfile(r.Context())
	if errors.Is(err, database.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		storeError(w, err, "Profile", "fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) apiUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.ProfilePatch
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		storeError(w, err, "Profile", "update profile")
		return
	}
	profile, err := s.db.UpdateProfile(r.Context(), p)
	if err != nil {
		storeError(w, err, "Profile", "update profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	valid, err := s.db.VerifyPassword(r.Context(), req.Password)
	if err != nil {
		storeError(w, err, "Credential", "verify password")
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	if err := s.createSession(w, r); err != nil {
		storeError(w, err, "Session", "create session")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w, r)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

func (s *Server) apiSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: s.authenticated(r)})
}

func (s *Server) apiContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.loadContent(r.Context(), false)
	if err != nil {
		storeError(w, err, "Content", "fetch content")
		return
	}
	writeJSON(w, http.StatusOK, content)
}
