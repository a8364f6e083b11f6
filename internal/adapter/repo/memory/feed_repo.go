package memory

import (
	"context"
	"sort"

	"hearthvale/internal/app/ports"
)

type FeedRepo struct {
	store *Store
}

func NewFeedRepo(store *Store) FeedRepo {
	return FeedRepo{store: store}
}

// Append inserts the entry and prunes the room down to the ports.FeedCapacity
// newest entries by (OccurredAt, ID). A repeated ID is a conflict.
func (r FeedRepo) Append(ctx context.Context, entry ports.FeedEntry) error {
	return r.store.write(ctx, func() error {
		current := r.store.feed[entry.RoomID]
		for _, existing := range current {
			if existing.ID == entry.ID {
				return ports.ErrConflict
			}
		}
		entries := make([]ports.FeedEntry, 0, len(current)+1)
		entries = append(entries, current...)
		entries = append(entries, entry)
		sort.SliceStable(entries, func(i, j int) bool {
			return newerFeedEntry(entries[i], entries[j])
		})
		if len(entries) > ports.FeedCapacity {
			entries = entries[:ports.FeedCapacity]
		}
		r.store.feed[entry.RoomID] = entries
		return nil
	})
}

// ListRecent returns up to limit entries, newest first.
func (r FeedRepo) ListRecent(ctx context.Context, roomID string, limit int) ([]ports.FeedEntry, error) {
	if limit <= 0 || limit > ports.FeedCapacity {
		limit = ports.FeedCapacity
	}
	var out []ports.FeedEntry
	r.store.read(ctx, func() {
		entries := r.store.feed[roomID]
		out = append(make([]ports.FeedEntry, 0, min(limit, len(entries))), entries[:min(limit, len(entries))]...)
	})
	return out, nil
}

func newerFeedEntry(a, b ports.FeedEntry) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.After(b.OccurredAt)
	}
	return a.ID > b.ID
}
