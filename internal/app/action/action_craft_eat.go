package action

import (
	"fmt"

	"hearthvale/internal/domain/economy"
)

type refineActionHandler struct{ BaseHandler }
type craftActionHandler struct{ BaseHandler }
type eatActionHandler struct{ BaseHandler }

func (h refineActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.RefineAction)
	recipe, ok := hc.Catalog.Recipe(a.RecipeID)
	if !ok {
		hc.Fail(fmt.Sprintf("unknown refine recipe %q", a.RecipeID))
		return
	}
	if !hc.PayCosts() {
		return
	}
	mods := hc.yieldModifiers(&a.Performance)
	mods.IsRefining = true
	if !yieldRecipeOutputs(hc, recipe, mods, isJackpot(a.Performance)) {
		hc.Fail("nothing came out of the " + recipe.Name)
		return
	}
	hc.TrackXP(economy.SkillCrafting, firstPositive(recipe.XP, hc.Rule().XP))
	hc.DamageTools()
	hc.Succeed("you refined " + recipe.Name)
}

// Resolve crafts a recipe. An item recipe equips the fresh instance when its
// slot is free and carries it in the inventory otherwise, never both.
func (h craftActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.CraftAction)
	recipe, ok := hc.Catalog.Recipe(a.RecipeID)
	if !ok {
		hc.Fail(fmt.Sprintf("unknown craft recipe %q", a.RecipeID))
		return
	}
	if !hc.PayCosts() {
		return
	}
	produced := false
	if recipe.OutputItem != "" {
		tmpl, _ := hc.Catalog.Template(recipe.OutputItem)
		item := economy.EquipmentItem{
			ID:            tmpl.ID + "_" + shortID(hc.NewID()),
			Durability:    tmpl.MaxDurability,
			MaxDurability: tmpl.MaxDurability,
		}
		if hc.Player.Equipment == nil {
			hc.Player.Equipment = map[economy.Slot]*economy.EquipmentItem{}
		}
		if hc.Player.Equipment[tmpl.Slot] == nil {
			hc.Player.Equipment[tmpl.Slot] = &item
		} else {
			hc.Player.Inventory = append(hc.Player.Inventory, item)
		}
		produced = true
	}
	if len(recipe.Outputs) > 0 {
		mods := hc.yieldModifiers(&a.Performance)
		mods.IsRefining = true
		if yieldRecipeOutputs(hc, recipe, mods, isJackpot(a.Performance)) {
			produced = true
		}
	}
	if !produced {
		hc.Fail("the " + recipe.Name + " did not come together")
		return
	}
	hc.TrackXP(economy.SkillCrafting, firstPositive(recipe.XP, hc.Rule().XP))
	hc.DamageTools()
	hc.Succeed("you crafted " + recipe.Name)
}

func (h eatActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.EatAction)
	food, ok := hc.Catalog.Food(a.Food)
	if !ok {
		hc.Fail(fmt.Sprintf("%s is not edible", hc.Catalog.ResourceName(a.Food)))
		return
	}
	if !hc.PayCosts() {
		return
	}
	gained := hc.Player.RestoreStamina(food.Stamina)
	hc.Player.RestoreMorale(food.Morale)
	hc.Succeed(fmt.Sprintf("you ate %s and recovered %d stamina", hc.Catalog.ResourceName(a.Food), gained))
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
