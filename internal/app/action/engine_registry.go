package action

import (
	"time"

	"hearthvale/internal/domain/economy"
)

type ActionSpec struct {
	Type    economy.ActionType
	Handler ActionHandler
}

// ActionHandler resolves one action type against the in-transaction player
// copy. Both methods report through hc.Result and never return errors:
// anything that is not a store failure is a rejected action.
type ActionHandler interface {
	Precheck(hc *HandlerContext) economy.Check
	Resolve(hc *HandlerContext)
}

type BaseHandler struct{}

// Precheck runs the shared requirement gates and keeps the assembled costs
// for PayCosts.
func (BaseHandler) Precheck(hc *HandlerContext) economy.Check {
	costs, check := economy.EvaluateRequirements(hc.Catalog, hc.Player, hc.Action, hc.World, hc.Now)
	hc.Costs = costs
	return check
}

func (BaseHandler) Resolve(hc *HandlerContext) {
	hc.Fail("nothing happened")
}

// HandlerContext is the working state of one resolution attempt.
type HandlerContext struct {
	Catalog *economy.Registry
	Player  *economy.Player
	World   economy.WorldContext
	Action  economy.Action
	Costs   economy.Costs
	Result  economy.ActionResult
	Now     time.Time
	Rand    func() float64
	NewID   func() string
}

func actionRegistry() map[economy.ActionType]ActionSpec {
	gather := gatherActionHandler{}
	return map[economy.ActionType]ActionSpec{
		economy.ActionWork:         {Type: economy.ActionWork, Handler: gather},
		economy.ActionChop:         {Type: economy.ActionChop, Handler: gather},
		economy.ActionMine:         {Type: economy.ActionMine, Handler: gather},
		economy.ActionQuarry:       {Type: economy.ActionQuarry, Handler: gather},
		economy.ActionForage:       {Type: economy.ActionForage, Handler: gather},
		economy.ActionHunt:         {Type: economy.ActionHunt, Handler: gather},
		economy.ActionGatherWool:   {Type: economy.ActionGatherWool, Handler: gather},
		economy.ActionGatherHoney:  {Type: economy.ActionGatherHoney, Handler: gather},
		economy.ActionPlant:        {Type: economy.ActionPlant, Handler: plantActionHandler{}},
		economy.ActionTend:         {Type: economy.ActionTend, Handler: tendActionHandler{}},
		economy.ActionHarvest:      {Type: economy.ActionHarvest, Handler: harvestActionHandler{}},
		economy.ActionFeedChickens: {Type: economy.ActionFeedChickens, Handler: feedChickensActionHandler{}},
		economy.ActionCollectEggs:  {Type: economy.ActionCollectEggs, Handler: collectEggsActionHandler{}},
		economy.ActionDrawWater:    {Type: economy.ActionDrawWater, Handler: drawWaterActionHandler{}},
		economy.ActionHangRack:     {Type: economy.ActionHangRack, Handler: hangRackActionHandler{}},
		economy.ActionCollectRack:  {Type: economy.ActionCollectRack, Handler: collectRackActionHandler{}},
		economy.ActionRefine:       {Type: economy.ActionRefine, Handler: refineActionHandler{}},
		economy.ActionCraft:        {Type: economy.ActionCraft, Handler: craftActionHandler{}},
		economy.ActionSleep:        {Type: economy.ActionSleep, Handler: sleepActionHandler{}},
		economy.ActionEat:          {Type: economy.ActionEat, Handler: eatActionHandler{}},
	}
}
