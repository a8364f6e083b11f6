package runtime

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"hearthvale/internal/domain/economy"
	"hearthvale/internal/domain/world"
)

// RoomState is the persisted part of a room's context. Season, weather and
// tick come from the clock.
type RoomState struct {
	SettlementName string
	ActiveLaws     []string
	Upgrades       map[string]int
}

type RoomStateStore interface {
	Get(ctx context.Context, roomID string) (RoomState, bool, error)
}

type Config struct {
	Clock           world.Clock
	Now             func() time.Time
	RoomStore       RoomStateStore
	Defaults        RoomState
	RefreshInterval time.Duration
}

type cachedRoom struct {
	state    RoomState
	loadedAt time.Time
}

type Provider struct {
	cfg Config

	mu    sync.Mutex
	rooms map[string]cachedRoom
}

func DefaultConfig() Config {
	return Config{
		Clock:    world.DefaultClock(),
		Now:      time.Now,
		Defaults: RoomState{SettlementName: "Hearthvale"},
	}
}

func NewProvider(cfg Config) *Provider {
	def := DefaultConfig()
	if cfg.Clock == (world.Clock{}) {
		cfg.Clock = def.Clock
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Defaults.SettlementName == "" {
		cfg.Defaults.SettlementName = def.Defaults.SettlementName
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Minute
	}
	return &Provider{cfg: cfg, rooms: map[string]cachedRoom{}}
}

func (p *Provider) Snapshot(ctx context.Context, roomID string) (economy.WorldContext, error) {
	nowAt := p.cfg.Now()
	state, err := p.roomState(ctx, roomID, nowAt)
	if err != nil {
		return economy.WorldContext{}, err
	}
	return economy.WorldContext{
		RoomID:     roomID,
		Season:     p.cfg.Clock.SeasonAt(nowAt),
		Weather:    p.cfg.Clock.WeatherAt(roomID, nowAt),
		GameTick:   p.cfg.Clock.TickAt(nowAt),
		ActiveLaws: slices.Clone(state.ActiveLaws),
		Settlement: economy.Settlement{
			Name:     state.SettlementName,
			Upgrades: maps.Clone(state.Upgrades),
		},
	}, nil
}

// Invalidate drops the cached state of a room so the next snapshot reloads it.
func (p *Provider) Invalidate(roomID string) {
	p.mu.Lock()
	delete(p.rooms, roomID)
	p.mu.Unlock()
}

func (p *Provider) roomState(ctx context.Context, roomID string, now time.Time) (RoomState, error) {
	if p.cfg.RoomStore == nil {
		return p.cfg.Defaults, nil
	}
	p.mu.Lock()
	cached, ok := p.rooms[roomID]
	p.mu.Unlock()
	if ok && now.Sub(cached.loadedAt) < p.cfg.RefreshInterval {
		return cached.state, nil
	}

	state, found, err := p.cfg.RoomStore.Get(ctx, roomID)
	if err != nil {
		return RoomState{}, err
	}
	if !found {
		state = p.cfg.Defaults
	}
	if state.SettlementName == "" {
		state.SettlementName = p.cfg.Defaults.SettlementName
	}
	p.mu.Lock()
	p.rooms[roomID] = cachedRoom{state: state, loadedAt: now}
	p.mu.Unlock()
	return state, nil
}
