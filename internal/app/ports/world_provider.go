package ports

import (
	"context"

	"hearthvale/internal/domain/economy"
)

// RoomProvider supplies the read-only room context actions resolve against.
type RoomProvider interface {
	Snapshot(ctx context.Context, roomID string) (economy.WorldContext, error)
}
