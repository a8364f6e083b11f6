package action

import (
	"fmt"

	"hearthvale/internal/domain/economy"
)

// gatherActionHandler serves every action that pulls a raw resource out of
// the land: WORK, CHOP, MINE, QUARRY, FORAGE, HUNT, GATHER_WOOL and
// GATHER_HONEY.
type gatherActionHandler struct{ BaseHandler }

func (h gatherActionHandler) Resolve(hc *HandlerContext) {
	a, ok := hc.Action.(economy.GatherAction)
	if !ok {
		hc.Fail("malformed gather action")
		return
	}
	rule := hc.Rule()
	if rule.Output == "" {
		hc.Fail(fmt.Sprintf("%s yields nothing here", a.Kind))
		return
	}
	if !hc.PayCosts() {
		return
	}

	mods := hc.yieldModifiers(&a.Performance)
	mods.RequiresTool = rule.RequiresTool
	amount := economy.CalculateYield(hc.Catalog, hc.Player, rule.BaseYield, rule.Skill, mods, hc.Now)
	name := hc.Catalog.ResourceName(rule.Output)
	if amount <= 0 {
		hc.Fail("you came back without any " + name)
		return
	}
	hc.AddYield(rule.Output, amount, isJackpot(a.Performance), false)

	if rule.LuckyDrop > 0 {
		chance := rule.LuckyDrop
		if tool := economy.BestToolForAction(hc.Catalog, hc.Player, a.Kind); tool != nil {
			chance += economy.EffectiveStats(hc.Catalog, tool).LuckBonus
		}
		if hc.Rand() < chance {
			hc.AddYield(rule.Output, luckyBonus(amount), false, true)
		}
	}

	hc.TrackXP(rule.Skill, rule.XP)
	hc.DamageTools()

	if a.Kind == economy.ActionGatherHoney {
		if !hc.StartProcess(economy.ProcessSpec{
			Type:       economy.ProcessHive,
			ItemID:     rule.Output,
			LocationID: a.LocationID,
			Duration:   processDuration(rule, economy.ProcessHive),
		}) {
			return
		}
	}
	if !hc.StartCooldown() {
		return
	}
	hc.Succeed(fmt.Sprintf("you gathered %d %s", amount, name))
}
