package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/Anggahrm/biolink/internal/models"
)

const trackColumns = `id, title, artist, url, cover_url, sort_order, is_active, created_at, updated_at`

func scanTrack(row rowScanner) (models.Track, error) {
	var (
		t                models.Track
		created, updated int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Artist, &t.URL, &t.CoverURL, &t.Order, &t.IsActive, &created, &updated); err != nil {
		return models.Track{}, err
	}
	t.CreatedAt = fromUnix(created)
	t.UpdatedAt = fromUnix(updated)
	return t, nil
}

func (d *database) ListTracks(ctx context.Context, opts ListOptions) ([]models.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks`
	var args []any
	if opts.ActiveOnly {
		query += ` WHERE is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY sort_order, seq`

	rows, err := d.db.QueryContext(ctx, d.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := []models.Track{}
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (d *database) GetTrack(ctx context.Context, id string) (models.Track, error) {
	t, err := scanTrack(d.db.QueryRowContext(ctx, d.q(`SELECT `+trackColumns+` FROM tracks WHERE id = ?`), id))
	if err != nil {
		return models.Track{}, notFound(err)
	}
	return t, nil
}

func (d *database) CreateTrack(ctx context.Context, t models.Track) (models.Track, error) {
	now := nowUnix()
	t.ID = uuid.NewString()
	t.CreatedAt = fromUnix(now)
	t.UpdatedAt = t.CreatedAt

	_, err := d.db.ExecContext(ctx, d.q(`INSERT INTO tracks (`+trackColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.Title, t.Artist, t.URL, t.CoverURL, t.Order, t.IsActive, now, now)
	if err != nil {
		return models.Track{}, err
	}
	return t, nil
}

func (d *database) UpdateTrack(ctx context.Context, id string, p models.TrackPatch) (models.Track, error) {
	t, err := scanTrack(d.db.QueryRowContext(ctx, d.q(`
UPDATE tracks SET
    title = COALESCE(?, title),
    artist = COALESCE(?, artist),
    url = COALESCE(?, url),
    cover_url = COALESCE(?, cover_url),
    sort_order = COALESCE(?, sort_order),
    is_active = COALESCE(?, is_active),
    updated_at = ?
WHERE id = ?
RETURNING `+trackColumns),
		p.Title, p.Artist, p.URL, p.CoverURL, p.Order, p.IsActive, nowUnix(), id))
	if err != nil {
		return models.Track{}, notFound(err)
	}
	return t, nil
}

func (d *database) DeleteTrack(ctx context.Context, id string) error {
	return d.deleteByID(ctx, "tracks", id)
}
