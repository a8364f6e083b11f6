package action

import (
	"fmt"

	"hearthvale/internal/domain/economy"
)

type feedChickensActionHandler struct{ BaseHandler }
type collectEggsActionHandler struct{ BaseHandler }

func (h feedChickensActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.FeedChickensAction)
	if !hc.PayCosts() {
		return
	}
	rule := hc.Rule()
	if !hc.StartProcess(economy.ProcessSpec{
		Type:       economy.ProcessCoop,
		ItemID:     rule.Output,
		LocationID: a.LocationID,
		Duration:   processDuration(rule, economy.ProcessCoop),
	}) {
		return
	}
	hc.TrackXP(rule.Skill, rule.XP)
	hc.Succeed("the chickens at " + a.LocationID + " are fed")
}

func (h collectEggsActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.CollectEggsAction)
	if _, check := economy.CollectReady(hc.Player, economy.ProcessCoop, a.LocationID, hc.Now); !check.Success {
		hc.Fail(check.Reason)
		return
	}
	if !hc.PayCosts() {
		return
	}
	rule := hc.Rule()
	amount := economy.CalculateYield(hc.Catalog, hc.Player, rule.BaseYield, rule.Skill, withoutToolPenalty(hc.yieldModifiers(nil)), hc.Now)
	if amount <= 0 {
		hc.Fail("the nests at " + a.LocationID + " are empty")
		return
	}
	hc.AddYield(rule.Output, amount, false, false)
	hc.TrackXP(rule.Skill, rule.XP)
	hc.Succeed(fmt.Sprintf("you collected %d %s", amount, hc.Catalog.ResourceName(rule.Output)))
}
