package sqliterepo

import (
	"context"
	"encoding/json"
	"fmt"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
)

type FeedRepo struct {
	store *Store
}

func NewFeedRepo(store *Store) FeedRepo {
	return FeedRepo{store: store}
}

// Append inserts the entry and prunes the room down to ports.FeedCapacity rows.
func (r FeedRepo) Append(ctx context.Context, entry ports.FeedEntry) error {
	utbytte, err := json.Marshal(entry.Utbytte)
	if err != nil {
		return fmt.Errorf("encode feed entry %s: %w", entry.ID, err)
	}
	return NewTxManager(r.store).RunInTx(ctx, func(ctx context.Context) error {
		q := r.store.conn(ctx)
		res, err := q.ExecContext(ctx,
			`INSERT INTO feed_entries (id, room_id, player_id, action_type, message, utbytte, occurred_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO NOTHING`,
			entry.ID, entry.RoomID, entry.PlayerID, entry.ActionType, entry.Message, string(utbytte), unixNano(entry.OccurredAt),
		)
		if err := conflictIfUnchanged(res, err); err != nil {
			return err
		}
		_, err = q.ExecContext(ctx,
			`DELETE FROM feed_entries WHERE room_id = ? AND id NOT IN (
				SELECT id FROM feed_entries WHERE room_id = ?
				ORDER BY occurred_at DESC, id DESC LIMIT ?
			)`,
			entry.RoomID, entry.RoomID, ports.FeedCapacity,
		)
		return err
	})
}

func (r FeedRepo) ListRecent(ctx context.Context, roomID string, limit int) ([]ports.FeedEntry, error) {
	if limit <= 0 || limit > ports.FeedCapacity {
		limit = ports.FeedCapacity
	}
	rows, err := r.store.conn(ctx).QueryContext(ctx,
		`SELECT id, player_id, action_type, message, utbytte, occurred_at FROM feed_entries
		 WHERE room_id = ? ORDER BY occurred_at DESC, id DESC LIMIT ?`, roomID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ports.FeedEntry, 0, limit)
	for rows.Next() {
		var (
			e          ports.FeedEntry
			utbytte    string
			occurredAt int64
		)
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.ActionType, &e.Message, &utbytte, &occurredAt); err != nil {
			return nil, err
		}
		var entries []economy.YieldEntry
		if err := json.Unmarshal([]byte(utbytte), &entries); err != nil {
			return nil, fmt.Errorf("decode feed entry %s: %w", e.ID, err)
		}
		e.RoomID = roomID
		e.Utbytte = entries
		e.OccurredAt = fromUnixNano(occurredAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
