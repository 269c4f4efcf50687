package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/Anggahrm/biolink/internal/models"
)

const linkColumns = `id, title, url, icon, category, color, sort_order, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (models.Link, error) {
	var (
		l                models.Link
		created, updated int64
	)
	if err := row.Scan(&l.ID, &l.Title, &l.URL, &l.Icon, &l.Category, &l.Color, &l.Order, &l.IsActive, &created, &updated); err != nil {
		return models.Link{}, err
	}
	l.CreatedAt = fromUnix(created)
	l.UpdatedAt = fromUnix(updated)
	return l, nil
}

func (d *database) ListLinks(ctx context.Context, opts ListOptions) ([]models.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links`
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

	links := []models.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

func (d *database) GetLink(ctx context.Context, id string) (models.Link, error) {
	l, err := scanLink(d.db.QueryRowContext(ctx, d.q(`SELECT `+linkColumns+` FROM links WHERE id = ?`), id))
	if err != nil {
		return models.Link{}, notFound(err)
	}
	return l, nil
}

func (d *database) CreateLink(ctx context.Context, l models.Link) (models.Link, error) {
	now := nowUnix()
	l.ID = uuid.NewString()
	l.CreatedAt = fromUnix(now)
	l.UpdatedAt = l.CreatedAt

	_, err := d.db.ExecContext(ctx, d.q(`INSERT INTO links (`+linkColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		l.ID, l.Title, l.URL, l.Icon, l.Category, l.Color, l.Order, l.IsActive, now, now)
	if err != nil {
		return models.Link{}, err
	}
	return l, nil
}

func (d *database) UpdateLink(ctx context.Context, id string, p models.LinkPatch) (models.Link, error) {
	p = p.WithDefaults()
	l, err := scanLink(d.db.QueryRowContext(ctx, d.q(`
UPDATE links SET
    title = COALESCE(?, title),
    url = COALESCE(?, url),
    icon = COALESCE(?, icon),
    category = COALESCE(?, category),
    color = COALESCE(?, color),
    sort_order = COALESCE(?, sort_order),
    is_active = COALESCE(?, is_active),
    updated_at = ?
WHERE id = ?
RETURNING `+linkColumns),
		p.Title, p.URL, p.Icon, p.Category, p.Color, p.Order, p.IsActive, nowUnix(), id))
	if err != nil {
		return models.Link{}, notFound(err)
	}
	return l, nil
}

func (d *database) DeleteLink(ctx context.Context, id string) error {
	return d.deleteByID(ctx, "links", id)
}

func (d *database) deleteByID(ctx context.Context, table, id string) error {
	res, err := d.db.ExecContext(ctx, d.q(`DELETE FROM `+table+` WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
