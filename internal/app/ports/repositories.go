package ports

import (
	"context"
	"time"

	"hearthvale/internal/domain/economy"
)

// FeedCapacity is how many recent entries a room feed keeps.
const FeedCapacity = 50

type ActionExecutionRecord struct {
	PlayerID       string
	IdempotencyKey string
	ActionType     string
	Result         economy.ActionResult
	AppliedAt      time.Time
}

type PlayerRepository interface {
	GetByID(ctx context.Context, playerID string) (economy.Player, error)
	Create(ctx context.Context, player economy.Player) error
	SaveWithVersion(ctx context.Context, player economy.Player, expectedVersion int64) error
}

type ActionExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ActionExecutionRecord, error)
	SaveExecution(ctx context.Context, execution ActionExecutionRecord) error
}

type FeedEntry struct {
	ID         string               `json:"id"`
	RoomID     string               `json:"room_id"`
	PlayerID   string               `json:"player_id"`
	ActionType string               `json:"action_type"`
	Message    string               `json:"message"`
	Utbytte    []economy.YieldEntry `json:"utbytte"`
	OccurredAt time.Time            `json:"occurred_at"`
}

//go:generate go tool mockgen -destination=./mocks/feed_mock.go -package=mocks . FeedRepository

// FeedRepository keeps the FeedCapacity most recent entries per room.
// ListRecent returns newest first.
type FeedRepository interface {
	Append(ctx context.Context, entry FeedEntry) error
	ListRecent(ctx context.Context, roomID string, limit int) ([]FeedEntry, error)
}

type PlayerCredentialRecord struct {
	PlayerID  string
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type CredentialRepository interface {
	Create(ctx context.Context, credential PlayerCredentialRecord) error
	GetByPlayerID(ctx context.Context, playerID string) (PlayerCredentialRecord, error)
}
