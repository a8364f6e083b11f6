package status

import (
	"context"
	"errors"
	"strings"
	"time"

	"hearthvale/internal/app/cooldown"
	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
	"hearthvale/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Players ports.PlayerRepository
	Rooms   ports.RoomProvider
	Clock   world.Clock
	Now     func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	player, err := u.Players.GetByID(ctx, req.PlayerID)
	if err != nil {
		return Response{}, err
	}
	snapshot, err := u.Rooms.Snapshot(ctx, player.RoomID)
	if err != nil {
		return Response{}, err
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	player.PruneBuffs(now)
	phase, next := u.Clock.PhaseAt(now)
	return Response{
		Player:             player,
		World:              snapshot,
		TimeOfDay:          string(phase),
		NextPhaseInSeconds: int(next / time.Second),
		Processes:          processViews(player, now),
		Cooldowns:          cooldown.RemainingByAction(&player, now),
		Buffs:              player.ActiveBuffs,
	}, nil
}

// processViews lists every process except cooldowns, which are reported
// separately.
func processViews(p economy.Player, now time.Time) []ProcessView {
	out := make([]ProcessView, 0, len(p.ActiveProcesses))
	for _, proc := range p.ActiveProcesses {
		if proc.Type == economy.ProcessCooldown {
			continue
		}
		view := ProcessView{
			ID:            proc.ID,
			Type:          proc.Type,
			ItemID:        proc.ItemID,
			LocationID:    proc.LocationID,
			State:         string(economy.PhaseActive),
			MaintainCount: proc.MaintainCount,
			YieldBonus:    proc.YieldBonus,
		}
		if proc.IsReady(now) {
			view.State = string(economy.PhaseReady)
		} else {
			view.RemainingSeconds = int((proc.Remaining(now) + time.Second - 1) / time.Second)
		}
		out = append(out, view)
	}
	return out
}
