package action

import (
	"fmt"
	"sort"

	"hearthvale/internal/domain/economy"
)

type hangRackActionHandler struct{ BaseHandler }
type collectRackActionHandler struct{ BaseHandler }

func (h hangRackActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.HangRackAction)
	recipe, ok := hc.Catalog.Recipe(a.RecipeID)
	if !ok || recipe.Kind != economy.RecipeRack {
		hc.Fail(fmt.Sprintf("unknown rack recipe %q", a.RecipeID))
		return
	}
	if !hc.PayCosts() {
		return
	}
	if !hc.StartProcess(economy.ProcessSpec{
		Type:       economy.ProcessRack,
		ItemID:     recipe.ID,
		LocationID: a.LocationID,
		Duration:   recipe.Duration,
		RecipeID:   recipe.ID,
	}) {
		return
	}
	hc.Succeed(fmt.Sprintf("you hung %s on the rack at %s", recipe.Name, a.LocationID))
}

// Resolve takes a finished rack down and yields the recipe's fixed output
// through the refining pipeline.
func (h collectRackActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.CollectRackAction)
	proc, check := economy.CollectReady(hc.Player, economy.ProcessRack, a.LocationID, hc.Now)
	if !check.Success {
		hc.Fail(check.Reason)
		return
	}
	recipe, ok := hc.Catalog.Recipe(proc.RecipeID)
	if !ok {
		hc.Fail(fmt.Sprintf("unknown rack recipe %q", proc.RecipeID))
		return
	}
	if !hc.PayCosts() {
		return
	}
	mods := hc.yieldModifiers(nil)
	mods.IsRefining = true
	if !yieldRecipeOutputs(hc, recipe, mods, false) {
		hc.Fail("the rack at " + a.LocationID + " held nothing usable")
		return
	}
	hc.TrackXP(economy.SkillCrafting, recipe.XP)
	hc.Succeed(fmt.Sprintf("you took %s down from the rack", recipe.Name))
}

// yieldRecipeOutputs credits every resource output of recipe in sorted
// order and reports whether anything was produced.
func yieldRecipeOutputs(hc *HandlerContext, recipe economy.Recipe, mods economy.YieldModifiers, jackpot bool) bool {
	ids := make([]string, 0, len(recipe.Outputs))
	for id := range recipe.Outputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	produced := false
	for _, id := range ids {
		amount := economy.CalculateYield(hc.Catalog, hc.Player, int(recipe.Outputs[id]), economy.SkillCrafting, mods, hc.Now)
		if amount <= 0 {
			continue
		}
		hc.AddYield(id, amount, jackpot, false)
		produced = true
	}
	return produced
}
