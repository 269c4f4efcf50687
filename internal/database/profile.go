package database

import (
	"context"

	"github.com/Anggahrm/biolink/internal/models"
)

func (d *database) GetProfile(ctx context.Context) (models.Profile, error) {
	var (
		p       models.Profile
		updated int64
	)
	err := d.db.QueryRowContext(ctx, d.q(`SELECT id, name, bio, avatar_url, updated_at FROM profile WHERE id = ?`), models.ProfileID).
		Scan(&p.ID, &p.Name, &p.Bio, &p.AvatarURL, &updated)
	if err != nil {
		return models.Profile{}, notFound(err)
	}
	p.UpdatedAt = fromUnix(updated)
	return p, nil
}

func (d *database) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.Profile, error) {
	var (
		p       models.Profile
		updated int64
	)
	err := d.db.QueryRowContext(ctx, d.q(`
UPDATE profile SET
    name = COALESCE(?, name),
    bio = COALESCE(?, bio),
    avatar_url = COALESCE(?, avatar_url),
    updated_at = ?
WHERE id = ?
RETURNING id, name, bio, avatar_url, updated_at`),
		patch.Name, patch.Bio, patch.AvatarURL, nowUnix(), models.ProfileID).
		Scan(&p.ID, &p.Name, &p.Bio, &p.AvatarURL, &updated)
	if err != nil {
		return models.Profile{}, notFound(err)
	}
	p.UpdatedAt = fromUnix(updated)
	return p, nil
}
