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

// PlayerRepo stores each player as one JSON document row guarded by a
// version column.
type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) GetByID(ctx context.Context, playerID string) (economy.Player, error) {
	var m model.Player
	err := dbFrom(ctx, r.db).
		Where(&model.Player{PlayerID: playerID}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return economy.Player{}, ports.ErrNotFound
		}
		return economy.Player{}, err
	}
	return decodePlayer(m)
}

func (r PlayerRepo) Create(ctx context.Context, player economy.Player) error {
	m, err := encodePlayer(player)
	if err != nil {
		return err
	}
	return mapWriteError(dbFrom(ctx, r.db).Create(&m).Error)
}

func (r PlayerRepo) SaveWithVersion(ctx context.Context, player economy.Player, expectedVersion int64) error {
	m, err := encodePlayer(player)
	if err != nil {
		return err
	}
	db := dbFrom(ctx, r.db)
	if expectedVersion == 0 {
		return mapWriteError(db.Create(&m).Error)
	}

	res := db.Model(&model.Player{}).
		Where("player_id = ? AND version = ?", player.ID, expectedVersion).
		Updates(map[string]any{
			"room_id":    m.RoomID,
			"name":       m.Name,
			"document":   m.Document,
			"version":    m.Version,
			"updated_at": m.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func encodePlayer(p economy.Player) (model.Player, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return model.Player{}, fmt.Errorf("encode player %s: %w", p.ID, err)
	}
	return model.Player{
		PlayerID:  p.ID,
		RoomID:    p.RoomID,
		Name:      p.Name,
		Document:  string(doc),
		Version:   p.Version,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func decodePlayer(m model.Player) (economy.Player, error) {
	var p economy.Player
	if err := json.Unmarshal([]byte(m.Document), &p); err != nil {
		return economy.Player{}, fmt.Errorf("decode player %s: %w", m.PlayerID, err)
	}
	p.ID = m.PlayerID
	p.RoomID = m.RoomID
	p.Version = m.Version
	p.UpdatedAt = m.UpdatedAt
	return p, nil
}
