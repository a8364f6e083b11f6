package action

import (
	"fmt"
	"math"

	"hearthvale/internal/domain/economy"
)

type plantActionHandler struct{ BaseHandler }
type tendActionHandler struct{ BaseHandler }
type harvestActionHandler struct{ BaseHandler }

func (h plantActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.PlantAction)
	crop, ok := hc.Catalog.Crop(a.CropID)
	if !ok {
		hc.Fail(fmt.Sprintf("unknown crop %q", a.CropID))
		return
	}
	if !hc.PayCosts() {
		return
	}
	if !hc.StartProcess(economy.ProcessSpec{
		Type:       economy.ProcessCrop,
		ItemID:     crop.ID,
		LocationID: a.LocationID,
		Duration:   crop.GrowTime,
	}) {
		return
	}
	hc.TrackXP(hc.Rule().Skill, hc.Rule().XP)
	hc.Succeed(fmt.Sprintf("you planted %s at %s", crop.Name, a.LocationID))
}

func (h tendActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.TendAction)
	if !hc.PayCosts() {
		return
	}
	proc, check := economy.MaintainCrop(hc.Player, a.LocationID, hc.Now)
	if !check.Success {
		hc.Fail(check.Reason)
		return
	}
	hc.TrackXP(hc.Rule().Skill, hc.Rule().XP)
	hc.Succeed(fmt.Sprintf("you tended the crop at %s (%d/%d)", a.LocationID, proc.MaintainCount, economy.MaxCropMaintains))
}

// Resolve interpolates the crop's yield range by performance, runs it through
// the yield pipeline and applies the tending bonus on top.
func (h harvestActionHandler) Resolve(hc *HandlerContext) {
	a := hc.Action.(economy.HarvestAction)
	proc, check := economy.CollectReady(hc.Player, economy.ProcessCrop, a.LocationID, hc.Now)
	if !check.Success {
		hc.Fail(check.Reason)
		return
	}
	crop, ok := hc.Catalog.Crop(proc.ItemID)
	if !ok {
		hc.Fail(fmt.Sprintf("unknown crop %q", proc.ItemID))
		return
	}
	if !hc.PayCosts() {
		return
	}

	base := crop.MinYield + int(math.Round(float64(crop.MaxYield-crop.MinYield)*a.Performance))
	amount := economy.CalculateYield(hc.Catalog, hc.Player, base, economy.SkillFarming, hc.yieldModifiers(nil), hc.Now)
	amount = int(math.Floor(float64(amount)*(1+proc.YieldBonus) + 1e-9))
	if amount <= 0 {
		hc.Fail("the harvest at " + a.LocationID + " failed")
		return
	}
	hc.AddYield(crop.Output, amount, isJackpot(a.Performance), false)
	hc.TrackXP(economy.SkillFarming, crop.XP)
	hc.DamageTools()
	hc.Succeed(fmt.Sprintf("you harvested %d %s", amount, hc.Catalog.ResourceName(crop.Output)))
}
