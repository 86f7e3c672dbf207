package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool used by the Postgres store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores tokens in the portal_tokens table (see migrations/).
type Postgres struct {
	db DB
}

// NewPostgres returns a Postgres-backed Store.
func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Load(ctx context.Context, key string) (string, error) {
	const query = `
        SELECT token FROM portal_tokens
        WHERE session_id=$1 AND (expires_at IS NULL OR expires_at > NOW())`

	var token string
	if err := p.db.QueryRow(ctx, query, key).Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return token, nil
}

func (p *Postgres) Save(ctx context.Context, key, token string, ttl time.Duration) error {
	const query = `
        INSERT INTO portal_tokens (session_id, token, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (session_id) DO UPDATE
        SET token=EXCLUDED.token, expires_at=EXCLUDED.expires_at, updated_at=NOW()`

	var expiresAt *time.Time
	if ttl > 0 {
		at := time.Now().Add(ttl)
		expiresAt = &at
	}
	_, err := p.db.Exec(ctx, query, key, token, expiresAt)
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM portal_tokens WHERE session_id=$1`, key)
	return err
}

// PurgeExpired removes rows whose expiry has passed and reports how many.
func (p *Postgres) PurgeExpired(ctx context.Context) (int64, error) {
	cmd, err := p.db.Exec(ctx, `DELETE FROM portal_tokens WHERE expires_at IS NOT NULL AND expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
