package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
	"hearthvale/internal/domain/world"
)

var statusNow = time.Date(2026, 1, 1, 0, 10, 0, 0, time.UTC)

func TestUseCase_IncludesProcessesCooldownsAndClock(t *testing.T) {
	p := economy.NewPlayer("p1", "room-1", "", statusNow)
	p.ActiveProcesses = []economy.ActiveProcess{
		{ID: "c", Type: economy.ProcessCrop, ItemID: "barley", LocationID: "field_1", ReadyAt: statusNow.Add(90 * time.Second), MaintainCount: 2, YieldBonus: 0.1},
		{ID: "w", Type: economy.ProcessWell, LocationID: "well_1", ReadyAt: statusNow.Add(-time.Second)},
		{ID: "cd", Type: economy.ProcessCooldown, ItemID: "HUNT", LocationID: economy.CooldownLocation(economy.ActionHunt), ReadyAt: statusNow.Add(time.Minute)},
	}
	p.ActiveBuffs = []economy.Buff{
		{Type: economy.BuffYieldBonus, Value: 0.1, ExpiresAt: statusNow.Add(time.Hour)},
		{Type: economy.BuffStaminaSave, Value: 0.2, ExpiresAt: statusNow.Add(-time.Hour)},
	}
	uc := UseCase{
		Players: statusPlayerRepo{player: p},
		Rooms:   statusRooms{world: economy.WorldContext{Season: economy.SeasonSpring, Weather: economy.WeatherFog, GameTick: 10}},
		Clock:   world.NewClock(world.ClockConfig{StartAt: statusNow.Add(-10 * time.Minute), TickDuration: time.Minute}),
		Now:     func() time.Time { return statusNow },
	}

	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.TimeOfDay != "day" || resp.NextPhaseInSeconds != 600 {
		t.Fatalf("unexpected clock: %s in %d", resp.TimeOfDay, resp.NextPhaseInSeconds)
	}
	if len(resp.Processes) != 2 {
		t.Fatalf("expected crop and well views, got %+v", resp.Processes)
	}
	if resp.Processes[0].State != "active" || resp.Processes[0].RemainingSeconds != 90 || resp.Processes[0].MaintainCount != 2 {
		t.Fatalf("unexpected crop view: %+v", resp.Processes[0])
	}
	if resp.Processes[1].State != "ready" || resp.Processes[1].RemainingSeconds != 0 {
		t.Fatalf("unexpected well view: %+v", resp.Processes[1])
	}
	if resp.Cooldowns["HUNT"] != 60 {
		t.Fatalf("unexpected cooldowns: %v", resp.Cooldowns)
	}
	if len(resp.Buffs) != 1 || resp.Buffs[0].Type != economy.BuffYieldBonus {
		t.Fatalf("expired buff reported: %+v", resp.Buffs)
	}
	if resp.World.Weather != economy.WeatherFog || resp.World.RoomID != "room-1" {
		t.Fatalf("unexpected world: %+v", resp.World)
	}
}

func TestUseCase_RejectsEmptyPlayerID(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PropagatesPlayerRepoError(t *testing.T) {
	uc := UseCase{Players: statusPlayerRepo{err: ports.ErrNotFound}, Rooms: statusRooms{}}
	if _, err := uc.Execute(context.Background(), Request{PlayerID: "p1"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUseCase_PropagatesRoomError(t *testing.T) {
	wantErr := errors.New("room down")
	uc := UseCase{
		Players: statusPlayerRepo{player: economy.NewPlayer("p1", "room-1", "", statusNow)},
		Rooms:   statusRooms{err: wantErr},
	}
	if _, err := uc.Execute(context.Background(), Request{PlayerID: "p1"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected room error %v, got %v", wantErr, err)
	}
}

type statusPlayerRepo struct {
	player economy.Player
	err    error
}

func (r statusPlayerRepo) GetByID(_ context.Context, _ string) (economy.Player, error) {
	if r.err != nil {
		return economy.Player{}, r.err
	}
	return r.player.Clone(), nil
}

func (r statusPlayerRepo) Create(context.Context, economy.Player) error { return nil }

func (r statusPlayerRepo) SaveWithVersion(context.Context, economy.Player, int64) error { return nil }

type statusRooms struct {
	world economy.WorldContext
	err   error
}

func (r statusRooms) Snapshot(_ context.Context, roomID string) (economy.WorldContext, error) {
	if r.err != nil {
		return economy.WorldContext{}, r.err
	}
	w := r.world
	w.RoomID = roomID
	return w, nil
}
