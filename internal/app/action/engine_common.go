package action

import (
	"fmt"
	"math"
	"sort"
	"time"

	"hearthvale/internal/domain/economy"
)

func (hc *HandlerContext) Rule() economy.ActionRule {
	rule, _ := hc.Catalog.Rule(hc.Action.Type())
	return rule
}

func (hc *HandlerContext) Fail(reason string) {
	hc.Result.Fail(reason)
}

func (hc *HandlerContext) Succeed(message string) {
	hc.Result.Success = true
	hc.Result.Message = message
}

// PayCosts charges the stamina and resources assembled by Precheck.
func (hc *HandlerContext) PayCosts() bool {
	ids := make([]string, 0, len(hc.Costs.Resources))
	for id := range hc.Costs.Resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if !hc.Player.ConsumeResource(id, hc.Costs.Resources[id]) {
			hc.Fail(fmt.Sprintf("not enough %s", hc.Catalog.ResourceName(id)))
			return false
		}
	}
	hc.Player.SpendStamina(hc.Costs.Stamina)
	return true
}

// AddYield credits amount of resource and records it in the result.
func (hc *HandlerContext) AddYield(resource string, amount int, jackpot, bonus bool) {
	if amount <= 0 || resource == "" {
		return
	}
	hc.Player.AddResource(resource, float64(amount))
	hc.Result.Utbytte = append(hc.Result.Utbytte, economy.YieldEntry{
		Resource: resource,
		Amount:   float64(amount),
		Jackpot:  jackpot,
		Bonus:    bonus,
	})
}

func (hc *HandlerContext) TrackXP(skill economy.SkillType, amount int) {
	if amount <= 0 || skill == "" {
		return
	}
	hc.Result.XP = append(hc.Result.XP, hc.Player.AwardXP(skill, amount))
}

// DamageTools wears every relevant slot of the action by the rule's tool wear.
func (hc *HandlerContext) DamageTools() {
	wear := hc.Rule().ToolWear
	if wear <= 0 {
		wear = economy.DefaultToolWear
	}
	for _, slot := range economy.ActionSlots(hc.Catalog, hc.Player, hc.Action.Type()) {
		if entry, ok := hc.Player.WearItem(slot, wear); ok {
			hc.Result.Durability = append(hc.Result.Durability, entry)
		}
	}
}

func (hc *HandlerContext) StartCooldown() bool {
	check := economy.StartCooldown(hc.Player, hc.NewID(), hc.Action.Type(), hc.Rule().Cooldown, hc.Now)
	if !check.Success {
		hc.Fail(check.Reason)
		return false
	}
	return true
}

// StartProcess claims a process slot, failing the action when it is held.
func (hc *HandlerContext) StartProcess(spec economy.ProcessSpec) bool {
	spec.ID = hc.NewID()
	if _, check := economy.StartProcess(hc.Player, spec, hc.Now); !check.Success {
		hc.Fail(check.Reason)
		return false
	}
	return true
}

func (hc *HandlerContext) yieldModifiers(performance *float64) economy.YieldModifiers {
	mods := economy.WorldYieldModifiers(hc.Catalog, hc.World, hc.Action.Type())
	mods.Performance = performance
	return mods
}

func processDuration(rule economy.ActionRule, t economy.ProcessType) time.Duration {
	if rule.Process > 0 {
		return rule.Process
	}
	return economy.DefaultProcessDurations[t]
}

func isJackpot(performance float64) bool {
	return performance >= economy.JackpotPerformance
}

func luckyBonus(amount int) int {
	return max(1, int(math.Floor(float64(amount)*economy.LuckyDropFraction)))
}

// withoutToolPenalty is for hand work no tool could improve.
func withoutToolPenalty(mods economy.YieldModifiers) economy.YieldModifiers {
	zero := 0.0
	mods.NoToolPenalty = &zero
	return mods
}
