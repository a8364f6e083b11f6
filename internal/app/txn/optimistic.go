package txn

import (
	"context"
	"errors"
	"fmt"

	"hearthvale/internal/app/ports"
)

type Decision int

const (
	DecisionCommit Decision = iota
	DecisionAbort
)

const DefaultMaxAttempts = 5

// Store is a versioned key/value view. CompareAndSwap must fail with
// ports.ErrConflict when the stored version differs from expectedVersion.
type Store[S any] interface {
	Load(ctx context.Context, key string) (value S, version int64, exists bool, err error)
	CompareAndSwap(ctx context.Context, key string, value S, expectedVersion int64) error
}

// Func computes the next value from the one just read. It runs once per
// attempt and must not cause side effects outside the transaction.
type Func[S any] func(ctx context.Context, current S, exists bool) (S, Decision, error)

type Outcome[S any] struct {
	Value    S
	Decision Decision
	Attempts int
}

type config struct {
	maxAttempts int
	tx          ports.TxManager
	onCommit    func(ctx context.Context) error
}

type Option func(*config)

func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithTxManager runs every attempt inside tx.RunInTx.
func WithTxManager(tx ports.TxManager) Option {
	return func(c *config) { c.tx = tx }
}

// OnCommit runs inside the attempt after a successful swap. An error undoes
// the attempt; ports.ErrConflict retries it.
func OnCommit(fn func(ctx context.Context) error) Option {
	return func(c *config) { c.onCommit = fn }
}

// WithOptimisticTransaction reads key, applies fn and swaps the result in
// against the version read. Conflicts re-run the whole cycle up to the
// attempt limit. DecisionAbort writes nothing and returns the value read.
func WithOptimisticTransaction[S any](ctx context.Context, store Store[S], key string, fn Func[S], opts ...Option) (Outcome[S], error) {
	cfg := config{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&cfg)
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Outcome[S]{Attempts: attempt - 1}, err
		}
		var out Outcome[S]
		err := cfg.run(ctx, func(ctx context.Context) error {
			current, version, exists, err := store.Load(ctx, key)
			if err != nil {
				return err
			}
			next, decision, err := fn(ctx, current, exists)
			if err != nil {
				return err
			}
			out = Outcome[S]{Value: current, Decision: decision, Attempts: attempt}
			if decision == DecisionAbort {
				return nil
			}
			if err := store.CompareAndSwap(ctx, key, next, version); err != nil {
				return err
			}
			out.Value = next
			if cfg.onCommit != nil {
				return cfg.onCommit(ctx)
			}
			return nil
		})
		if errors.Is(err, ports.ErrConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return Outcome[S]{Attempts: attempt}, err
		}
		return out, nil
	}
	return Outcome[S]{Attempts: cfg.maxAttempts}, fmt.Errorf("gave up after %d attempts: %w", cfg.maxAttempts, lastErr)
}

func (c config) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.tx == nil {
		return fn(ctx)
	}
	return c.tx.RunInTx(ctx, fn)
}
