package mock

import (
	"context"

	"hearthvale/internal/domain/economy"
)

// Provider returns the same room context for every room.
type Provider struct {
	World economy.WorldContext
	Err   error
}

func (p Provider) Snapshot(_ context.Context, roomID string) (economy.WorldContext, error) {
	if p.Err != nil {
		return economy.WorldContext{}, p.Err
	}
	w := p.World
	w.RoomID = roomID
	if w.Season == "" {
		w.Season = economy.SeasonSpring
	}
	if w.Weather == "" {
		w.Weather = economy.WeatherClear
	}
	return w, nil
}
