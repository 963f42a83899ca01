package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRefreshToken = errors.New("refresh token invalid or expired")

func (s *Store) CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES ($1,$2,$3,$4)`,
		id, userID, tokenHash, expiresAt,
	)
	return id, err
}

// ConsumeRefreshToken validates and rotates in a single transaction: the old
// token is revoked, linked to its replacement, and the new one inserted. A
// revoked or expired token fails with ErrRefreshToken.
func (s *Store) ConsumeRefreshToken(ctx context.Context, tokenHash, newHash string, newExpiry time.Time) (userID string, err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var oldID string
	var expiresAt time.Time
	var revoked bool
	err = tx.QueryRow(ctx,
		`SELECT id, user_id, expires_at, revoked
		 FROM refresh_tokens WHERE token_hash = $1
		 FOR UPDATE`, tokenHash,
	).Scan(&oldID, &userID, &expiresAt, &revoked)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrRefreshToken
	}
	if err != nil {
		return "", err
	}
	if revoked || time.Now().After(expiresAt) {
		return "", ErrRefreshToken
	}

	newID := uuid.New().String()
	_, err = tx.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true, replaced_by = $1 WHERE id = $2`,
		newID, oldID,
	)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES ($1,$2,$3,$4)`,
		newID, userID, newHash, newExpiry,
	)
	if err != nil {
		return "", err
	}

	return userID, tx.Commit(ctx)
}

// revoke every live token for a user (logout or suspected theft)
func (s *Store) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE user_id = $1 AND revoked = false`,
		userID,
	)
	return err
}
