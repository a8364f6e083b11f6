package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hearthvale/internal/adapter/repo/gorm/model"
	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"

	"gorm.io/gorm"
)

type ActionExecutionRepo struct {
	db *gorm.DB
}

func NewActionExecutionRepo(db *gorm.DB) ActionExecutionRepo {
	return ActionExecutionRepo{db: db}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ports.ActionExecutionRecord, error) {
	var m model.ActionExecution
	err := dbFrom(ctx, r.db).
		Where(&model.ActionExecution{PlayerID: playerID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var result economy.ActionResult
	if err := json.Unmarshal([]byte(m.Result), &result); err != nil {
		return nil, fmt.Errorf("decode execution %s/%s: %w", playerID, key, err)
	}
	return &ports.ActionExecutionRecord{
		PlayerID:       m.PlayerID,
		IdempotencyKey: m.IdempotencyKey,
		ActionType:     m.ActionType,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	resultJSON, err := json.Marshal(execution.Result)
	if err != nil {
		return fmt.Errorf("encode execution %s/%s: %w", execution.PlayerID, execution.IdempotencyKey, err)
	}
	m := model.ActionExecution{
		PlayerID:       execution.PlayerID,
		IdempotencyKey: execution.IdempotencyKey,
		ActionType:     execution.ActionType,
		Result:         string(resultJSON),
		AppliedAt:      execution.AppliedAt,
	}
	return mapWriteError(dbFrom(ctx, r.db).Create(&m).Error)
}
