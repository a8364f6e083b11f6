package sqliterepo

import (
	"context"
	"database/sql"
	"errors"

	"hearthvale/internal/app/ports"
)

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.PlayerCredentialRecord) error {
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO player_credentials (player_id, key_salt, key_hash, status, created_at)
		 VALUES (?, ?, ?, ?, ?) ON CONFLICT(player_id) DO NOTHING`,
		credential.PlayerID, credential.KeySalt, credential.KeyHash, credential.Status, unixNano(credential.CreatedAt),
	)
	return conflictIfUnchanged(res, err)
}

func (r CredentialRepo) GetByPlayerID(ctx context.Context, playerID string) (ports.PlayerCredentialRecord, error) {
	rec := ports.PlayerCredentialRecord{PlayerID: playerID}
	var createdAt int64
	err := r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT key_salt, key_hash, status, created_at FROM player_credentials WHERE player_id = ?`, playerID,
	).Scan(&rec.KeySalt, &rec.KeyHash, &rec.Status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.PlayerCredentialRecord{}, ports.ErrNotFound
		}
		return ports.PlayerCredentialRecord{}, err
	}
	rec.CreatedAt = fromUnixNano(createdAt)
	return rec, nil
}
