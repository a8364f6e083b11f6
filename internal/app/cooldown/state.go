package cooldown

import (
	"strings"
	"time"

	"hearthvale/internal/domain/economy"
)

// RemainingForAction returns the whole seconds left on the action's
// cooldown, rounded up.
func RemainingForAction(p *economy.Player, action economy.ActionType, now time.Time) (int, bool) {
	remaining := economy.RemainingCooldown(p, action, now)
	if remaining <= 0 {
		return 0, false
	}
	return ceilSeconds(remaining), true
}

func RemainingByAction(p *economy.Player, now time.Time) map[string]int {
	out := map[string]int{}
	prefix := economy.CooldownLocation("")
	for _, proc := range p.ActiveProcesses {
		if proc.Type != economy.ProcessCooldown || proc.IsReady(now) {
			continue
		}
		action := strings.TrimPrefix(proc.LocationID, prefix)
		if s := ceilSeconds(proc.Remaining(now)); s > out[action] {
			out[action] = s
		}
	}
	return out
}

func ceilSeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}
