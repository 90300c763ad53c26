package models

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BlacklistModel persists revoked refresh-token identifiers. A refresh token
// stays blacklisted until its own expiry, after which the row is garbage.
type BlacklistModel struct {
	DB *pgxpool.Pool
}

func (m *BlacklistModel) Add(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	_, err := m.DB.Exec(
		ctx,
		"INSERT INTO token_blacklist (jti, user_id, expires_at) VALUES ($1, $2, $3) ON CONFLICT (jti) DO NOTHING",
		jti,
		userID,
		expiresAt,
	)
	return err
}

func (m *BlacklistModel) Contains(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = $1)", jti).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// PurgeExpired drops blacklist rows whose tokens can no longer be used
// anyway. Run periodically from a background task.
func (m *BlacklistModel) PurgeExpired(ctx context.Context) (int64, error) {
	status, err := m.DB.Exec(ctx, "DELETE FROM token_blacklist WHERE expires_at < now()")
	if err != nil {
		return 0, err
	}
	return status.RowsAffected(), nil
}
