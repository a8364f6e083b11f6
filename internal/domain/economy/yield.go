package economy

import (
	"math"
	"time"
)

// YieldModifiers are the situational inputs of CalculateYield. Zero-valued
// multipliers mean "unset" and count as 1.0.
type YieldModifiers struct {
	ActionType    ActionType
	IsRefining    bool
	RequiresTool  bool
	NoToolPenalty *float64
	Season        float64
	Weather       float64
	Law           float64
	Upgrades      float64
	Performance   *float64
}

// WorldYieldModifiers fills the room-derived multipliers for action.
func WorldYieldModifiers(reg *Registry, world WorldContext, action ActionType) YieldModifiers {
	return YieldModifiers{
		ActionType: action,
		Season:     reg.SeasonYieldMod(world.Season, action),
		Weather:    reg.WeatherYieldMod(world.Weather, action),
		Law:        reg.LawMultiplier(world.ActiveLaws, action),
		Upgrades:   reg.UpgradeMultiplier(world.Settlement.Upgrades, action),
	}
}

// CalculateYield runs the multiplicative yield pipeline. The stage order is
// significant: floor happens after the world multipliers and before the
// performance stage.
func CalculateYield(reg *Registry, p *Player, base int, skill SkillType, mods YieldModifiers, now time.Time) int {
	bonus := 0.0
	hasTool := false
	for _, e := range RelevantEquipment(reg, p, mods.ActionType) {
		if !e.Item.Usable() {
			continue
		}
		bonus += EffectiveStats(reg, e.Item).YieldBonus
		if IsToolSlot(e.Slot) {
			hasTool = true
		}
	}

	total := sanitize(float64(base) + bonus)

	perLevel := GatheringBonusPerLevel
	if mods.IsRefining {
		perLevel = RefiningBonusPerLevel
	}
	total = sanitize(total * (1 + float64(skillLevel(p, skill))*perLevel))

	if !mods.IsRefining && !hasTool && !noToolExempt(mods.ActionType) {
		if mods.RequiresTool {
			return 0
		}
		penalty := DefaultNoToolPenalty
		if mods.NoToolPenalty != nil {
			penalty = clamp01(*mods.NoToolPenalty)
		}
		total = sanitize(total * (1 - penalty))
	}

	regional := regionalMultiplier(p, mods.ActionType)
	buff := yieldBuffMultiplier(p, now)

	total = sanitize(floorTol(total *
		unsetIsOne(mods.Season) *
		unsetIsOne(mods.Weather) *
		unsetIsOne(mods.Law) *
		unsetIsOne(mods.Upgrades) *
		regional *
		buff))

	if mods.Performance != nil {
		perf := clamp01(*mods.Performance)
		total = sanitize(ceilTol(total * (MinigameBaseMultiplier + perf*MinigamePerformanceWeight)))
	}

	if total < 0 {
		return 0
	}
	return int(total)
}

func noToolExempt(action ActionType) bool {
	return action == ActionForage || action == ActionGatherHoney
}

func regionalMultiplier(p *Player, action ActionType) float64 {
	if p == nil {
		return 1
	}
	switch action {
	case ActionMine:
		switch p.RegionID {
		case RegionWest:
			return RegionalRichMultiplier
		case RegionEast:
			return RegionalPoorMultiplier
		}
	case ActionChop:
		switch p.RegionID {
		case RegionWest:
			return RegionalPoorMultiplier
		case RegionEast:
			return RegionalRichMultiplier
		}
	}
	return 1
}

func yieldBuffMultiplier(p *Player, now time.Time) float64 {
	if p == nil {
		return 1
	}
	m := 1.0
	for _, b := range p.ActiveBuffs {
		if b.Type == BuffYieldBonus && b.Active(now) {
			m *= 1 + b.Value
		}
	}
	return m
}

func skillLevel(p *Player, skill SkillType) int {
	if p == nil || skill == "" {
		return 0
	}
	return p.Skills[skill].Level
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FallbackYield
	}
	return v
}

func floorTol(v float64) float64 {
	return math.Floor(v + floatTolerance)
}

func ceilTol(v float64) float64 {
	return math.Ceil(v - floatTolerance)
}

func unsetIsOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultPerformance
	}
	return math.Max(0, math.Min(1, v))
}
