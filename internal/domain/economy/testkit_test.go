package economy

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testDefinition() Definition {
	return Definition{
		Resources: map[string]string{
			"grain": "korn",
			"wood":  "tømmer",
			"ore":   "malm",
			"stone": "stein",
			"wool":  "ull",
			"honey": "honning",
			"seed":  "såkorn",
			"flour": "mel",
			"fish":  "fisk",
			"water": "vann",
			"gold":  "gull",
		},
		Templates: []ItemTemplate{
			{ID: "scythe", Name: "Ljå", Slot: SlotScythe, MaxDurability: 50, Stats: ItemStats{YieldBonus: 2}},
			{ID: "axe", Name: "Øks", Slot: SlotAxe, MaxDurability: 40, Stats: ItemStats{YieldBonus: 1}, RelevantActions: []ActionType{ActionChop}},
			{ID: "axe_iron", Name: "Jernøks", Slot: SlotAxe, MaxDurability: 80, Stats: ItemStats{YieldBonus: 3}, RelevantActions: []ActionType{ActionChop}},
			{ID: "pickaxe", Name: "Hakke", Slot: SlotPickaxe, MaxDurability: 40, Stats: ItemStats{YieldBonus: 1}, RelevantActions: []ActionType{ActionMine, ActionQuarry}},
			{ID: "shears", Name: "Saks", Slot: SlotShears, MaxDurability: 30, RelevantActions: []ActionType{ActionGatherWool}},
			{ID: "lucky_hat", Name: "Lykkehatt", Slot: SlotHead, Stats: ItemStats{YieldBonus: 1}, RelevantActions: []ActionType{ActionWork}},
			{ID: "knife", Name: "Kniv", Slot: SlotMainHand, MaxDurability: 20},
		},
		Actions: map[ActionType]ActionRule{
			ActionWork:       {Skill: SkillFarming, Stamina: 10, Output: "grain", BaseYield: 10, XP: 10, LuckyDrop: LuckyDropChance},
			ActionChop:       {Skill: SkillWoodcutting, Stamina: 12, Output: "wood", BaseYield: 4, XP: 12},
			ActionMine:       {Skill: SkillMining, Stamina: 15, Output: "ore", BaseYield: 3, XP: 15},
			ActionQuarry:     {Skill: SkillMining, Stamina: 15, Output: "stone", BaseYield: 4, XP: 12, RequiresTool: true},
			ActionForage:     {Skill: SkillGathering, Stamina: 5, Output: "berries", BaseYield: 3, XP: 5},
			ActionGatherWool: {Skill: SkillGathering, Stamina: 8, Output: "wool", BaseYield: 3, XP: 8, RequiresTool: true},
			ActionHunt:       {Skill: SkillHunting, Stamina: 12, Output: "meat", BaseYield: 2, XP: 12, Cooldown: 30 * time.Minute},
			ActionPlant:      {Skill: SkillFarming, Stamina: 5, XP: 5},
			ActionSleep:      {},
			ActionDrawWater:  {Stamina: 3, Output: "water", BaseYield: 5, Process: 30 * time.Minute},
			ActionRefine:     {Skill: SkillCrafting, Stamina: 8, XP: 8},
			ActionCraft:      {Skill: SkillCrafting, Stamina: 10, XP: 10},
			ActionEat:        {},
		},
		Recipes: []Recipe{
			{ID: "flour", Name: "Mel", Kind: RecipeRefine, Stamina: 6, Inputs: map[string]float64{"grain": 3}, Outputs: map[string]float64{"flour": 2}, XP: 6},
			{ID: "plank", Name: "Planke", Kind: RecipeCraft, Inputs: map[string]float64{"wood": 2}, Outputs: map[string]float64{"plank": 1}, XP: 4},
			{ID: "iron_axe", Name: "Jernøks", Kind: RecipeCraft, Stamina: 20, Inputs: map[string]float64{"wood": 2, "ore": 3}, OutputItem: "axe_iron", XP: 20},
			{ID: "dried_fish", Name: "Tørrfisk", Kind: RecipeRack, Inputs: map[string]float64{"fish": 2}, Outputs: map[string]float64{"dried_fish": 2}, Duration: 2 * time.Hour, XP: 6},
		},
		Crops: []Crop{
			{ID: "barley", Name: "Bygg", Seed: "seed", SeedCost: 2, Output: "grain", MinYield: 4, MaxYield: 10, GrowTime: 3 * time.Hour, XP: 15},
		},
		Foods: []Food{{Resource: "bread", Stamina: 25, Morale: 5}},
		Laws: []Law{
			{ID: "tithe", Name: "Tiende", YieldMultiplier: 0.9},
			{ID: "forest_protection", Name: "Skogvern", YieldMultiplier: 0.5, Actions: []ActionType{ActionChop}},
		},
		Upgrades: []Upgrade{
			{ID: "mill", Name: "Mølle", BonusPerLevel: 0.1, Actions: []ActionType{ActionWork}},
		},
		SeasonStamina:  map[Season]float64{SeasonWinter: 1.2},
		WeatherStamina: map[Weather]float64{WeatherRain: 1.1, WeatherStorm: 1.3},
		SeasonYield:    map[Season]map[ActionType]float64{SeasonWinter: {ActionWork: 0.5}},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(testDefinition())
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

// bareWorker has no equipment and every skill at level zero.
func bareWorker() Player {
	p := NewPlayer("p1", "room-1", "", testNow)
	for k := range p.Skills {
		p.Skills[k] = SkillState{Level: 0, MaxXP: StartingMaxXP}
	}
	return p
}

func equip(p *Player, slot Slot, item EquipmentItem) {
	if p.Equipment == nil {
		p.Equipment = map[Slot]*EquipmentItem{}
	}
	cp := item
	p.Equipment[slot] = &cp
}

func springDay() WorldContext {
	return WorldContext{RoomID: "room-1", Season: SeasonSpring, Weather: WeatherClear, GameTick: 12}
}

func perf(v float64) *float64 { return &v }
