package action

import (
	"fmt"

	"hearthvale/internal/domain/economy"
)

type sleepActionHandler struct{ BaseHandler }

func (h sleepActionHandler) Resolve(hc *HandlerContext) {
	if !hc.PayCosts() {
		return
	}
	gained := hc.Player.RestoreStamina(economy.SleepStaminaRestore)
	hc.Player.RestoreMorale(economy.SleepMoraleRestore)
	if !hc.StartCooldown() {
		return
	}
	hc.Succeed(fmt.Sprintf("you slept through the night and recovered %d stamina", gained))
}
