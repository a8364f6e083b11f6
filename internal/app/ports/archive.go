package ports

import (
	"context"
	"time"

	"hearthvale/internal/domain/economy"
)

//go:generate go tool mockgen -destination=./mocks/archive_mock.go -package=mocks . ArchiveLog

type ArchiveRecord struct {
	ID         string               `json:"id"`
	RoomID     string               `json:"room_id"`
	PlayerID   string               `json:"player_id"`
	ActionType string               `json:"action_type"`
	Payload    economy.Payload      `json:"payload"`
	Result     economy.ActionResult `json:"result"`
	Attempts   int                  `json:"attempts"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// ArchiveLog is an unbounded, best-effort append log of resolved actions.
type ArchiveLog interface {
	Append(ctx context.Context, record ArchiveRecord) error
}
