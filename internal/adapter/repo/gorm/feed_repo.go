package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"hearthvale/internal/adapter/repo/gorm/model"
	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"

	"gorm.io/gorm"
)

type FeedRepo struct {
	db *gorm.DB
}

func NewFeedRepo(db *gorm.DB) FeedRepo {
	return FeedRepo{db: db}
}

// Append inserts the entry and prunes the room down to ports.FeedCapacity rows.
func (r FeedRepo) Append(ctx context.Context, entry ports.FeedEntry) error {
	utbytte, err := json.Marshal(entry.Utbytte)
	if err != nil {
		return fmt.Errorf("encode feed entry %s: %w", entry.ID, err)
	}
	m := model.FeedEntry{
		ID:         entry.ID,
		RoomID:     entry.RoomID,
		PlayerID:   entry.PlayerID,
		ActionType: entry.ActionType,
		Message:    entry.Message,
		Utbytte:    string(utbytte),
		OccurredAt: entry.OccurredAt,
	}
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return mapWriteError(err)
		}
		keep := tx.Model(&model.FeedEntry{}).
			Select("id").
			Where("room_id = ?", entry.RoomID).
			Order("occurred_at DESC, id DESC").
			Limit(ports.FeedCapacity)
		return tx.Where("room_id = ? AND id NOT IN (?)", entry.RoomID, keep).
			Delete(&model.FeedEntry{}).Error
	})
}

func (r FeedRepo) ListRecent(ctx context.Context, roomID string, limit int) ([]ports.FeedEntry, error) {
	if limit <= 0 || limit > ports.FeedCapacity {
		limit = ports.FeedCapacity
	}
	var rows []model.FeedEntry
	err := dbFrom(ctx, r.db).
		Where("room_id = ?", roomID).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.FeedEntry, 0, len(rows))
	for _, row := range rows {
		var utbytte []economy.YieldEntry
		if err := json.Unmarshal([]byte(row.Utbytte), &utbytte); err != nil {
			return nil, fmt.Errorf("decode feed entry %s: %w", row.ID, err)
		}
		out = append(out, ports.FeedEntry{
			ID:         row.ID,
			RoomID:     row.RoomID,
			PlayerID:   row.PlayerID,
			ActionType: row.ActionType,
			Message:    row.Message,
			Utbytte:    utbytte,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
