package memory

import (
	"context"
	"maps"
)

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx holds the store lock for fn and restores the previous contents when
// fn fails. Nested calls join the outer transaction.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	players := maps.Clone(s.players)
	execution := maps.Clone(s.execution)
	feed := maps.Clone(s.feed)
	credentials := maps.Clone(s.credentials)
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.players, s.execution, s.feed, s.credentials = players, execution, feed, credentials
		return err
	}
	return nil
}
