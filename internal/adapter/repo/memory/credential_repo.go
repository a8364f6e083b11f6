package memory

import (
	"context"

	"hearthvale/internal/app/ports"
)

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.PlayerCredentialRecord) error {
	return r.store.write(ctx, func() error {
		if _, exists := r.store.credentials[credential.PlayerID]; exists {
			return ports.ErrConflict
		}
		r.store.credentials[credential.PlayerID] = credential
		return nil
	})
}

func (r CredentialRepo) GetByPlayerID(ctx context.Context, playerID string) (ports.PlayerCredentialRecord, error) {
	var (
		cred ports.PlayerCredentialRecord
		ok   bool
	)
	r.store.read(ctx, func() {
		cred, ok = r.store.credentials[playerID]
	})
	if !ok {
		return ports.PlayerCredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
