package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(httprate.Limit(s.rateLimit, time.Minute))
	r.Use(middleware.Heartbeat("/health"))
	r.Use(s.cacheControl)

	r.Mount("/static", http.FileServer(s.assets))

	r.Handle("/robots.txt", s.serveFile("static/robots.txt"))

	r.Get("/", s.HandleIndex)
	r.Get("/admin/login", s.HandleLoginPage)
	r.Post("/admin/login", s.HandleLogin)
	r.Get("/admin/logout", s.HandleLogout)
	r.Post("/admin/logout", s.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireAuth)
		r.Get("/admin", s.HandleAdmin)
		r.Post("/admin/links", s.HandleAddLink)
		r.Post("/admin/links/{id}", s.HandleUpdateLink)
		r.Post("/admin/links/{id}/toggle", s.HandleToggleLink)
		r.Post("/admin/links/{id}/delete", s.HandleDeleteLink)
		r.Post("/admin/music", s.HandleAddTrack)
		r.Post("/admin/music/{id}", s.HandleUpdateTrack)
		r.Post("/admin/music/{id}/toggle", s.HandleToggleTrack)
		r.Post("/admin/music/{id}/delete", s.HandleDeleteTrack)
		r.Post("/admin/profile", s.HandleUpdateProfile)
		r.Post("/admin/password", s.HandleUpdatePassword)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/links", s.apiListLinks)
		r.Get("/links/{id}", s.apiGetLink)
		r.Get("/music", s.apiListTracks)
		r.Get("/music/{id}", s.apiGetTrack)
		r.Get("/profile", s.apiGetProfile)
		r.Post("/auth/login", s.apiLogin)
		r.Get("/auth/session", s.apiSession)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAPIAuth)
			r.Post("/links", s.apiCreateLink)
			r.Put("/links/{id}", s.apiUpdateLink)
			r.Delete("/links/{id}", s.apiDeleteLink)
			r.Post("/music", s.apiCreateTrack)
			r.Put("/music/{id}", s.apiUpdateTrack)
			r.Delete("/music/{id}", s.apiDeleteTrack)
			r.Put("/profile", s.apiUpdateProfile)
			r.Post("/auth/logout", s.apiLogout)
			r.Get("/admin/content", s.apiContent)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
	})

	return r
}
