package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hearthvale/internal/adapter/repo/gorm/model"

	"gorm.io/gorm"
)

type GormRoomStateStore struct {
	db *gorm.DB
}

func NewGormRoomStateStore(db *gorm.DB) GormRoomStateStore {
	return GormRoomStateStore{db: db}
}

func (s GormRoomStateStore) Get(ctx context.Context, roomID string) (RoomState, bool, error) {
	var row model.Room
	err := s.db.WithContext(ctx).
		Where(&model.Room{RoomID: roomID}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoomState{}, false, nil
		}
		return RoomState{}, false, err
	}
	state := RoomState{SettlementName: row.SettlementName}
	if err := json.Unmarshal([]byte(row.ActiveLaws), &state.ActiveLaws); err != nil {
		return RoomState{}, false, fmt.Errorf("decode laws of room %s: %w", roomID, err)
	}
	if err := json.Unmarshal([]byte(row.Upgrades), &state.Upgrades); err != nil {
		return RoomState{}, false, fmt.Errorf("decode upgrades of room %s: %w", roomID, err)
	}
	return state, true, nil
}

func (s GormRoomStateStore) Save(ctx context.Context, roomID string, state RoomState) error {
	laws, err := json.Marshal(state.ActiveLaws)
	if err != nil {
		return err
	}
	upgrades, err := json.Marshal(state.Upgrades)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where(&model.Room{RoomID: roomID}).
		Assign(model.Room{
			SettlementName: state.SettlementName,
			ActiveLaws:     string(laws),
			Upgrades:       string(upgrades),
			UpdatedAt:      time.Now(),
		}).
		FirstOrCreate(&model.Room{}).Error
}
