package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"
)

// Only a digest of the session token is persisted.
func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (d *database) CreateSession(ctx context.Context, token string, ttl time.Duration) error {
	if token == "" {
		return errors.New("session token is required")
	}
	now := time.Now()
	_, err := d.db.ExecContext(ctx, d.q(`INSERT INTO sessions (token_hash, expires_at, created_at) VALUES (?, ?, ?)`),
		tokenHash(token), now.Add(ttl).Unix(), now.Unix())
	return err
}

func (d *database) ValidateSession(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	var expiresAt int64
	err := d.db.QueryRowContext(ctx, d.q(`SELECT expires_at FROM sessions WHERE token_hash = ?`), tokenHash(token)).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if nowUnix() >= expiresAt {
		_ = d.DeleteSession(ctx, token)
		return false, nil
	}
	return true, nil
}

func (d *database) DeleteSession(ctx context.Context, token string) error {
	_, err := d.db.ExecContext(ctx, d.q(`DELETE FROM sessions WHERE token_hash = ?`), tokenHash(token))
	return err
}

func (d *database) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	res, err := d.db.ExecContext(ctx, d.q(`DELETE FROM sessions WHERE expires_at <= ?`), nowUnix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
