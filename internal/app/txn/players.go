package txn

import (
	"context"
	"errors"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
)

type playerStore struct {
	repo ports.PlayerRepository
}

// Players exposes a player repository as a Store keyed by player id. The
// swap stamps the next version on the saved player.
func Players(repo ports.PlayerRepository) Store[economy.Player] {
	return playerStore{repo: repo}
}

func (s playerStore) Load(ctx context.Context, key string) (economy.Player, int64, bool, error) {
	p, err := s.repo.GetByID(ctx, key)
	if errors.Is(err, ports.ErrNotFound) {
		return economy.Player{}, 0, false, nil
	}
	if err != nil {
		return economy.Player{}, 0, false, err
	}
	return p, p.Version, true, nil
}

func (s playerStore) CompareAndSwap(ctx context.Context, _ string, value economy.Player, expectedVersion int64) error {
	value.Version = expectedVersion + 1
	return s.repo.SaveWithVersion(ctx, value, expectedVersion)
}
