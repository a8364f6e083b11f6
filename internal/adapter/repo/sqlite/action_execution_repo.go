package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
)

type ActionExecutionRepo struct {
	store *Store
}

func NewActionExecutionRepo(store *Store) ActionExecutionRepo {
	return ActionExecutionRepo{store: store}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ports.ActionExecutionRecord, error) {
	var (
		actionType string
		result     string
		appliedAt  int64
	)
	err := r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT action_type, result, applied_at FROM action_executions
		 WHERE player_id = ? AND idempotency_key = ?`, playerID, key,
	).Scan(&actionType, &result, &appliedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var decoded economy.ActionResult
	if err := json.Unmarshal([]byte(result), &decoded); err != nil {
		return nil, fmt.Errorf("decode execution %s/%s: %w", playerID, key, err)
	}
	return &ports.ActionExecutionRecord{
		PlayerID:       playerID,
		IdempotencyKey: key,
		ActionType:     actionType,
		Result:         decoded,
		AppliedAt:      fromUnixNano(appliedAt),
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	result, err := json.Marshal(execution.Result)
	if err != nil {
		return fmt.Errorf("encode execution %s/%s: %w", execution.PlayerID, execution.IdempotencyKey, err)
	}
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO action_executions (player_id, idempotency_key, action_type, result, applied_at)
		 VALUES (?, ?, ?, ?, ?) ON CONFLICT(player_id, idempotency_key) DO NOTHING`,
		execution.PlayerID, execution.IdempotencyKey, execution.ActionType, string(result), unixNano(execution.AppliedAt),
	)
	return conflictIfUnchanged(res, err)
}
