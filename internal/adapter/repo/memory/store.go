package memory

import (
	"context"
	"sync"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
)

// Store is a single-process store. RunInTx holds the write lock for the whole
// transaction; repository calls outside a transaction lock on their own.
type Store struct {
	mu          sync.RWMutex
	players     map[string]economy.Player
	execution   map[string]ports.ActionExecutionRecord
	feed        map[string][]ports.FeedEntry
	credentials map[string]ports.PlayerCredentialRecord
}

func NewStore() *Store {
	return &Store{
		players:     make(map[string]economy.Player),
		execution:   make(map[string]ports.ActionExecutionRecord),
		feed:        make(map[string][]ports.FeedEntry),
		credentials: make(map[string]ports.PlayerCredentialRecord),
	}
}

func execKey(playerID, key string) string {
	return playerID + "::" + key
}

func (s *Store) SeedPlayer(player economy.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player.Clone()
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey{}).(bool)
	return held
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}
