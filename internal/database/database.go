package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Anggahrm/biolink/internal/models"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

type ListOptions struct {
	ActiveOnly bool
}

type Database interface {
	Close()
	Ping(ctx context.Context) error

	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, p models.ProfilePatch) (models.Profile, error)

	ListLinks(ctx context.Context, opts ListOptions) ([]models.Link, error)
	GetLink(ctx context.Context, id string) (models.Link, error)
	CreateLink(ctx context.Context, l models.Link) (models.Link, error)
	UpdateLink(ctx context.Context, id string, p models.LinkPatch) (models.Link, error)
	DeleteLink(ctx context.Context, id string) error

	ListTracks(ctx context.Context, opts ListOptions) ([]models.Track, error)
	GetTrack(ctx context.Context, id string) (models.Track, error)
	CreateTrack(ctx context.Context, t models.Track) (models.Track, error)
	UpdateTrack(ctx context.Context, id string, p models.TrackPatch) (models.Track, error)
	DeleteTrack(ctx context.Context, id string) error

	HasPassword(ctx context.Context) (bool, error)
	VerifyPassword(ctx context.Context, password string) (bool, error)
	SetPassword(ctx context.Context, password string) error
	EnsurePassword(ctx context.Context, password string) error

	CreateSession(ctx context.Context, token string, ttl time.Duration) error
	ValidateSession(ctx context.Context, token string) (bool, error)
	DeleteSession(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type dialect int

const (
	dialectPostgres dialect = iota
	dialectSQLite
)

func (d dialect) String() string {
	if d == dialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

type database struct {
	db      *sql.DB
	dialect dialect
	closeFn func()
}

// NewDatabase opens the store named by dbURL and applies pending migrations.
// postgres:// and postgresql:// URLs use PostgreSQL; sqlite: and file: URLs
// use an embedded SQLite file.
func NewDatabase(ctx context.Context, dbURL string) (Database, error) {
	var (
		d   *database
		err error
	)
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		d, err = openPostgres(ctx, dbURL)
	case strings.HasPrefix(dbURL, "sqlite:"), strings.HasPrefix(dbURL, "file:"):
		d, err = openSQLite(ctx, sqlitePath(dbURL))
	default:
		return nil, fmt.Errorf("unsupported database URL %q", dbURL)
	}
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, d.db, d.dialect); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return d, nil
}

func (d *database) Close() {
	d.closeFn()
}

func (d *database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// q rewrites ? placeholders into the dialect's form.
func (d *database) q(query string) string {
	if d.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func nowUnix() int64 { return time.Now().Unix() }

func fromUnix(v int64) time.Time { return time.Unix(v, 0).UTC() }
