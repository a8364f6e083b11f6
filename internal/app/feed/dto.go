package feed

import "hearthvale/internal/app/ports"

type Request struct {
	RoomID       string
	PlayerID     string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Entries []ports.FeedEntry `json:"entries"`
}
