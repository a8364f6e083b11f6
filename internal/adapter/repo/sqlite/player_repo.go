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

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) GetByID(ctx context.Context, playerID string) (economy.Player, error) {
	var (
		doc       string
		version   int64
		updatedAt int64
	)
	err := r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT document, version, updated_at FROM players WHERE player_id = ?`, playerID,
	).Scan(&doc, &version, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return economy.Player{}, ports.ErrNotFound
		}
		return economy.Player{}, err
	}
	var p economy.Player
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return economy.Player{}, fmt.Errorf("decode player %s: %w", playerID, err)
	}
	p.ID = playerID
	p.Version = version
	p.UpdatedAt = fromUnixNano(updatedAt)
	return p, nil
}

func (r PlayerRepo) Create(ctx context.Context, player economy.Player) error {
	return r.insert(ctx, player)
}

func (r PlayerRepo) SaveWithVersion(ctx context.Context, player economy.Player, expectedVersion int64) error {
	if expectedVersion == 0 {
		return r.insert(ctx, player)
	}
	doc, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("encode player %s: %w", player.ID, err)
	}
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`UPDATE players SET room_id = ?, name = ?, document = ?, version = ?, updated_at = ?
		 WHERE player_id = ? AND version = ?`,
		player.RoomID, player.Name, string(doc), player.Version, unixNano(player.UpdatedAt),
		player.ID, expectedVersion,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r PlayerRepo) insert(ctx context.Context, player economy.Player) error {
	doc, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("encode player %s: %w", player.ID, err)
	}
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO players (player_id, room_id, name, document, version, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(player_id) DO NOTHING`,
		player.ID, player.RoomID, player.Name, string(doc), player.Version, unixNano(player.UpdatedAt),
	)
	return conflictIfUnchanged(res, err)
}

// conflictIfUnchanged maps an ON CONFLICT DO NOTHING insert that wrote no
// row to ports.ErrConflict.
func conflictIfUnchanged(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrConflict
	}
	return nil
}
