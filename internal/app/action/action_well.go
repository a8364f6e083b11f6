package action

import (
	"fmt"

	"hearthvale/internal/domain/economy"
)

type drawWaterActionHandler struct{ BaseHandler }

// Resolve draws from a full well and leaves it refilling.
func (h drawWaterActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.DrawWaterAction)
	if !hc.PayCosts() {
		return
	}
	rule := hc.Rule()
	amount := economy.CalculateYield(hc.Catalog, hc.Player, rule.BaseYield, rule.Skill, withoutToolPenalty(hc.yieldModifiers(nil)), hc.Now)
	if amount <= 0 {
		hc.Fail("the well at " + a.LocationID + " is dry")
		return
	}
	hc.AddYield(rule.Output, amount, false, false)
	if !hc.StartProcess(economy.ProcessSpec{
		Type:       economy.ProcessWell,
		ItemID:     rule.Output,
		LocationID: a.LocationID,
		Duration:   processDuration(rule, economy.ProcessWell),
	}) {
		return
	}
	hc.TrackXP(rule.Skill, rule.XP)
	hc.Succeed(fmt.Sprintf("you drew %d %s", amount, hc.Catalog.ResourceName(rule.Output)))
}
