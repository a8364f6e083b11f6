package gormrepo

import (
	"context"
	"errors"

	"hearthvale/internal/adapter/repo/gorm/model"
	"hearthvale/internal/app/ports"

	"gorm.io/gorm"
)

type CredentialRepo struct {
	db *gorm.DB
}

func NewCredentialRepo(db *gorm.DB) CredentialRepo {
	return CredentialRepo{db: db}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.PlayerCredentialRecord) error {
	m := model.PlayerCredential{
		PlayerID:  credential.PlayerID,
		KeySalt:   credential.KeySalt,
		KeyHash:   credential.KeyHash,
		Status:    credential.Status,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.CreatedAt,
	}
	return mapWriteError(dbFrom(ctx, r.db).Create(&m).Error)
}

func (r CredentialRepo) GetByPlayerID(ctx context.Context, playerID string) (ports.PlayerCredentialRecord, error) {
	var m model.PlayerCredential
	err := dbFrom(ctx, r.db).
		Where(&model.PlayerCredential{PlayerID: playerID}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PlayerCredentialRecord{}, ports.ErrNotFound
		}
		return ports.PlayerCredentialRecord{}, err
	}
	return ports.PlayerCredentialRecord{
		PlayerID:  m.PlayerID,
		KeySalt:   m.KeySalt,
		KeyHash:   m.KeyHash,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}, nil
}
