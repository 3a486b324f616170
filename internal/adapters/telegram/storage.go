package telegram

import (
	"context"
	"errors"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/store"

	gotd "github.com/gotd/td/session"
	"github.com/jackc/pgx/v5"
)

const sessionsDDL = `CREATE TABLE IF NOT EXISTS telegram_sessions (
	phone      text PRIMARY KEY,
	data       bytea NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// PGStorage keeps the MTProto session blob in postgres, one row per operator phone
type PGStorage struct {
	q     store.RowQuerier
	phone string
}

var _ gotd.Storage = (*PGStorage)(nil)

// NewPGStorage binds storage to the operator phone
func NewPGStorage(q store.RowQuerier, phone string) *PGStorage {
	return &PGStorage{q: q, phone: phone}
}

// Migrate creates the sessions table when missing
func (p *PGStorage) Migrate(ctx context.Context) error {
	if _, err := p.q.Exec(ctx, sessionsDDL); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "create telegram_sessions")
	}
	return nil
}

// LoadSession implements session.Storage
func (p *PGStorage) LoadSession(ctx context.Context) ([]byte, error) {
	data, err := store.Scalar[[]byte](ctx, p.q, `SELECT data FROM telegram_sessions WHERE phone = $1`, p.phone)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, gotd.ErrNotFound
	case err != nil:
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load telegram session")
	case len(data) == 0:
		return nil, gotd.ErrNotFound
	}
	return data, nil
}

// StoreSession implements session.Storage
func (p *PGStorage) StoreSession(ctx context.Context, data []byte) error {
	const q = `INSERT INTO telegram_sessions (phone, data, updated_at) VALUES ($1, $2, now())
ON CONFLICT (phone) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if err := store.ExecOne(ctx, p.q, q, p.phone, data); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "store telegram session")
	}
	return nil
}
