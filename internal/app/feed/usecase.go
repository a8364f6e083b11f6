package feed

import (
	"context"
	"errors"
	"sort"
	"strings"

	"hearthvale/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid feed request")

type UseCase struct {
	Feed ports.FeedRepository
}

// Execute lists a room's recent actions, newest first. The player filter and
// time window are applied after the capped read.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.RoomID = strings.TrimSpace(req.RoomID)
	if req.RoomID == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 || limit > ports.FeedCapacity {
		limit = ports.FeedCapacity
	}
	entries, err := u.Feed.ListRecent(ctx, req.RoomID, ports.FeedCapacity)
	if err != nil {
		return Response{}, err
	}
	entries = filter(entries, strings.TrimSpace(req.PlayerID), req.OccurredFrom, req.OccurredTo)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return Response{Entries: entries}, nil
}

func filter(entries []ports.FeedEntry, playerID string, from, to int64) []ports.FeedEntry {
	out := make([]ports.FeedEntry, 0, len(entries))
	for _, e := range entries {
		if playerID != "" && e.PlayerID != playerID {
			continue
		}
		ts := e.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, e)
	}
	return out
}
