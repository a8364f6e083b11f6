package memory

import (
	"context"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
)

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) GetByID(ctx context.Context, playerID string) (economy.Player, error) {
	var (
		player economy.Player
		ok     bool
	)
	r.store.read(ctx, func() {
		player, ok = r.store.players[playerID]
	})
	if !ok {
		return economy.Player{}, ports.ErrNotFound
	}
	return player.Clone(), nil
}

func (r PlayerRepo) Create(ctx context.Context, player economy.Player) error {
	return r.store.write(ctx, func() error {
		if _, exists := r.store.players[player.ID]; exists {
			return ports.ErrConflict
		}
		r.store.players[player.ID] = player.Clone()
		return nil
	})
}

func (r PlayerRepo) SaveWithVersion(ctx context.Context, player economy.Player, expectedVersion int64) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.players[player.ID]
		if !ok {
			if expectedVersion != 0 {
				return ports.ErrConflict
			}
			r.store.players[player.ID] = player.Clone()
			return nil
		}
		if current.Version != expectedVersion {
			return ports.ErrConflict
		}
		r.store.players[player.ID] = player.Clone()
		return nil
	})
}
