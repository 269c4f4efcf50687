package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/Anggahrm/biolink/internal/config"
	"github.com/Anggahrm/biolink/internal/database"
)

type ExecuteTemplateFunc func(wr io.Writer, name string, data any) error

const defaultSessionTTL = 7 * 24 * time.Hour

type Server struct {
	version       string
	port          string
	server        *http.Server
	assets        http.FileSystem
	tmplFunc      ExecuteTemplateFunc
	db            database.Database
	sessionTTL    time.Duration
	secureCookies bool
	rateLimit     int
}

func NewServer(version string, cfg config.Config, assets http.FileSystem, tmplFunc ExecuteTemplateFunc, db database.Database) *Server {
	s := &Server{
		version:       version,
		port:          cfg.HTTP.Port,
		assets:        assets,
		tmplFunc:      tmplFunc,
		db:            db,
		sessionTTL:    cfg.Admin.SessionTTL,
		secureCookies: cfg.Production(),
		rateLimit:     cfg.HTTP.RequestsPerMinute,
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = defaultSessionTTL
	}
	if s.rateLimit <= 0 {
		s.rateLimit = 500
	}

	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func FormatBuildVersion(version string) string {
	return fmt.Sprintf("Go Version: %s\nVersion: %s\nOS/Arch: %s/%s", runtime.Version(), version, runtime.GOOS, runtime.GOARCH)
}
