package economy

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Costs is what an action charges: the final stamina cost and the resources
// it consumes.
type Costs struct {
	Stamina   int
	Resources map[string]float64
}

var toolRequiredActions = map[ActionType]string{
	ActionGatherWool: "shears",
	ActionHunt:       "a bow or a trap",
	ActionQuarry:     "a chisel or a pickaxe",
}

// IsNight reports whether the room hour of tick lies in the night window.
func IsNight(tick int64) bool {
	hour := tick % TicksPerDay
	if hour < 0 {
		hour += TicksPerDay
	}
	return hour >= NightStartHour || hour < NightEndHour
}

// CalculateStaminaCost is ceil(base x season x weather x night x staminaSave).
func CalculateStaminaCost(reg *Registry, base int, season Season, weather Weather, buffs []Buff, tick int64, now time.Time) int {
	if base <= 0 {
		return 0
	}
	cost := float64(base) * reg.SeasonStaminaMod(season) * reg.WeatherStaminaMod(weather)
	if IsNight(tick) {
		cost *= NightStaminaMultiplier
	}
	for _, b := range buffs {
		if b.Type == BuffStaminaSave && b.Active(now) {
			cost *= math.Max(0, 1-b.Value)
		}
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return base
	}
	return int(ceilTol(cost))
}

// BaseCosts assembles the static cost table entry of action, overridden by
// recipe stamina and inputs or by the crop's seed cost.
func BaseCosts(reg *Registry, action Action) (int, map[string]float64, Check) {
	rule, _ := reg.Rule(action.Type())
	stamina := rule.Stamina
	resources := map[string]float64{}
	for k, v := range rule.Costs {
		resources[k] += v
	}

	switch a := action.(type) {
	case RefineAction, CraftAction, HangRackAction:
		recipe, check := recipeFor(reg, action)
		if !check.Success {
			return 0, nil, check
		}
		if recipe.Stamina > 0 {
			stamina = recipe.Stamina
		}
		for k, v := range recipe.Inputs {
			resources[k] += v
		}
	case PlantAction:
		crop, ok := reg.Crop(a.CropID)
		if !ok {
			return 0, nil, Fail(fmt.Sprintf("unknown crop %q", a.CropID))
		}
		if crop.Seed != "" {
			resources[crop.Seed] += crop.SeedCost
		}
	case EatAction:
		if _, ok := reg.Food(a.Food); !ok {
			return 0, nil, Fail(fmt.Sprintf("%s is not edible", reg.ResourceName(a.Food)))
		}
		resources[a.Food]++
	}
	return stamina, resources, Pass()
}

func recipeFor(reg *Registry, action Action) (Recipe, Check) {
	var id string
	var want RecipeKind
	switch a := action.(type) {
	case RefineAction:
		id, want = a.RecipeID, RecipeRefine
	case CraftAction:
		id, want = a.RecipeID, RecipeCraft
	case HangRackAction:
		id, want = a.RecipeID, RecipeRack
	}
	recipe, ok := reg.Recipe(id)
	if !ok || recipe.Kind != want {
		return Recipe{}, Fail(fmt.Sprintf("unknown %s recipe %q", strings.ToLower(string(want)), id))
	}
	return recipe, Pass()
}

// EvaluateRequirements runs the fail-fast gate sequence and returns the
// costs the action will charge when it passes.
func EvaluateRequirements(reg *Registry, p *Player, action Action, world WorldContext, now time.Time) (Costs, Check) {
	t := action.Type()

	if wait := RemainingCooldown(p, t, now); wait > 0 {
		return Costs{}, Fail(fmt.Sprintf("you must wait %s before you can %s again", FormatWait(wait), strings.ToLower(string(t))))
	}

	if broken := BrokenRelevantItem(reg, p, t); broken != nil {
		return Costs{}, Fail(fmt.Sprintf("%s is broken", ItemName(reg, broken.ID)))
	}

	if need, ok := toolRequiredActions[t]; ok && len(ActionSlots(reg, p, t)) == 0 {
		return Costs{}, Fail("you need " + need + " to do that")
	}

	base, resources, check := BaseCosts(reg, action)
	if !check.Success {
		return Costs{}, check
	}

	stamina := CalculateStaminaCost(reg, base, world.Season, world.Weather, p.ActiveBuffs, world.GameTick, now)
	if p.Status.Stamina < stamina {
		return Costs{}, Fail(fmt.Sprintf("not enough stamina: need %d, have %d", stamina, p.Status.Stamina))
	}

	ids := make([]string, 0, len(resources))
	for id := range resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		need := resources[id]
		have := p.Resource(id)
		if have+floatTolerance < need {
			return Costs{}, Fail(fmt.Sprintf("not enough %s: missing %s", reg.ResourceName(id), formatAmount(need-have)))
		}
	}

	if check := timeAndSeasonGates(p, action, world, now); !check.Success {
		return Costs{}, check
	}
	return Costs{Stamina: stamina, Resources: resources}, Pass()
}

// CheckActionRequirements is EvaluateRequirements without the costs.
func CheckActionRequirements(reg *Registry, p *Player, action Action, world WorldContext, now time.Time) Check {
	_, check := EvaluateRequirements(reg, p, action, world, now)
	return check
}

func timeAndSeasonGates(p *Player, action Action, world WorldContext, now time.Time) Check {
	switch a := action.(type) {
	case SleepAction:
		if !IsNight(world.GameTick) {
			return Fail("you can only sleep at night")
		}
	case PlantAction:
		if world.Season == SeasonWinter {
			return Fail("nothing can be planted in winter")
		}
	case DrawWaterAction:
		if PhaseOf(p, ProcessWell, a.LocationID, now) == PhaseActive {
			i := FindProcess(p, ProcessWell, a.LocationID)
			return Fail(fmt.Sprintf("the well is refilling, %s left", FormatWait(p.ActiveProcesses[i].Remaining(now))))
		}
	case GatherAction:
		if a.Kind == ActionGatherHoney && PhaseOf(p, ProcessHive, a.LocationID, now) == PhaseActive {
			return Fail("the bees are still restless")
		}
	}
	return Pass()
}

func formatAmount(v float64) string {
	if math.Abs(v-math.Round(v)) < floatTolerance {
		return fmt.Sprintf("%d", int64(math.Round(v)))
	}
	return fmt.Sprintf("%.2f", v)
}
