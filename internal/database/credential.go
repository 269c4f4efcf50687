package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const adminID = "admin"

// prehash digests the password so bcrypt sees every byte of it. bcrypt reads
// at most 72 bytes; the hex digest is 64.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func (d *database) passwordHash(ctx context.Context) (string, bool, error) {
	var hash string
	err := d.db.QueryRowContext(ctx, d.q(`SELECT password_hash FROM admin WHERE id = ?`), adminID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}

func (d *database) HasPassword(ctx context.Context) (bool, error) {
	_, ok, err := d.passwordHash(ctx)
	return ok, err
}

func (d *database) VerifyPassword(ctx context.Context, password string) (bool, error) {
	hash, ok, err := d.passwordHash(ctx)
	if err != nil || !ok {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), prehash(password))
	return err == nil, nil
}

func (d *database) SetPassword(ctx context.Context, password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = d.db.ExecContext(ctx, d.q(`
INSERT INTO admin (id, password_hash, updated_at) VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET password_hash = excluded.password_hash, updated_at = excluded.updated_at`),
		adminID, string(hashedPassword), nowUnix())
	return err
}

// EnsurePassword stores password as the credential unless it already matches.
func (d *database) EnsurePassword(ctx context.Context, password string) error {
	ok, err := d.VerifyPassword(ctx, password)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return d.SetPassword(ctx, password)
}
