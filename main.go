package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-password/password"

	"github.com/Anggahrm/biolink/internal/config"
	"github.com/Anggahrm/biolink/internal/database"
	"github.com/Anggahrm/biolink/internal/logging"
	"github.com/Anggahrm/biolink/server"
)

var (
	version = "dev"
)

//go:embed templates/*.html
var templatesFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "biolink:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to biolink.yaml")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(server.FormatBuildVersion(version))
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		File:        cfg.Log.File,
		DefaultSlog: true,
	})
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	defer logCloser.Close()

	tmpl, err := template.New("").ParseFS(templatesFiles, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewDatabase(initCtx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := ensureCredential(initCtx, db, cfg.Admin.Password, logger); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	srv := server.NewServer(version, cfg, http.FS(staticFiles), tmpl.ExecuteTemplate, db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	go srv.PurgeSessions(ctx, time.Hour)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info("Started server", slog.String("listen_addr", ":"+cfg.HTTP.Port), slog.String("env", cfg.Env))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// ensureCredential installs the configured admin password. Without one, a
// stored credential is kept, or a random password is generated and logged.
func ensureCredential(ctx context.Context, db database.Database, pw string, logger *slog.Logger) error {
	if pw != "" {
		return db.EnsurePassword(ctx, pw)
	}

	ok, err := db.HasPassword(ctx)
	if err != nil || ok {
		return err
	}

	generated, err := password.Generate(20, 4, 0, false, false)
	if err != nil {
		return err
	}
	if err := db.SetPassword(ctx, generated); err != nil {
		return err
	}
	logger.Warn("ADMIN_PASSWORD not set, generated an admin password", slog.String("password", generated))
	return nil
}
