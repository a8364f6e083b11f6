package economy

import "time"

type ActionType string

const (
	ActionWork         ActionType = "WORK"
	ActionChop         ActionType = "CHOP"
	ActionMine         ActionType = "MINE"
	ActionQuarry       ActionType = "QUARRY"
	ActionForage       ActionType = "FORAGE"
	ActionHunt         ActionType = "HUNT"
	ActionGatherWool   ActionType = "GATHER_WOOL"
	ActionGatherHoney  ActionType = "GATHER_HONEY"
	ActionPlant        ActionType = "PLANT"
	ActionTend         ActionType = "TEND"
	ActionHarvest      ActionType = "HARVEST"
	ActionFeedChickens ActionType = "FEED_CHICKENS"
	ActionCollectEggs  ActionType = "COLLECT_EGGS"
	ActionDrawWater    ActionType = "DRAW_WATER"
	ActionHangRack     ActionType = "HANG_RACK"
	ActionCollectRack  ActionType = "COLLECT_RACK"
	ActionRefine       ActionType = "REFINE"
	ActionCraft        ActionType = "CRAFT"
	ActionSleep        ActionType = "SLEEP"
	ActionEat          ActionType = "EAT"
)

type SkillType string

const (
	SkillFarming     SkillType = "FARMING"
	SkillWoodcutting SkillType = "WOODCUTTING"
	SkillMining      SkillType = "MINING"
	SkillGathering   SkillType = "GATHERING"
	SkillHunting     SkillType = "HUNTING"
	SkillCrafting    SkillType = "CRAFTING"
)

type Slot string

const (
	SlotAxe      Slot = "AXE"
	SlotPickaxe  Slot = "PICKAXE"
	SlotScythe   Slot = "SCYTHE"
	SlotMainHand Slot = "MAIN_HAND"
	SlotOffHand  Slot = "OFF_HAND"
	SlotBow      Slot = "BOW"
	SlotTrap     Slot = "TRAP"
	SlotChisel   Slot = "CHISEL"
	SlotShears   Slot = "SHEARS"
	SlotHead     Slot = "HEAD"
	SlotBody     Slot = "BODY"
	SlotFeet     Slot = "FEET"
)

// AllSlots is the canonical slot iteration order. Tie-breaks between equally
// good tools follow this order.
var AllSlots = []Slot{
	SlotAxe, SlotPickaxe, SlotScythe, SlotMainHand, SlotOffHand, SlotBow,
	SlotTrap, SlotChisel, SlotShears, SlotHead, SlotBody, SlotFeet,
}

type ProcessType string

const (
	ProcessCrop     ProcessType = "CROP"
	ProcessHive     ProcessType = "HIVE"
	ProcessCoop     ProcessType = "COOP"
	ProcessWell     ProcessType = "WELL"
	ProcessRack     ProcessType = "RACK"
	ProcessCooldown ProcessType = "COOLDOWN"
)

type BuffType string

const (
	BuffYieldBonus  BuffType = "YIELD_BONUS"
	BuffStaminaSave BuffType = "STAMINA_SAVE"
)

type Season string

const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
)

var SeasonOrder = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

type Weather string

const (
	WeatherClear Weather = "Clear"
	WeatherRain  Weather = "Rain"
	WeatherStorm Weather = "Storm"
	WeatherSnow  Weather = "Snow"
	WeatherFog   Weather = "Fog"
)

type ItemStats struct {
	YieldBonus float64 `json:"yield_bonus,omitempty" yaml:"yield_bonus"`
	SpeedBonus float64 `json:"speed_bonus,omitempty" yaml:"speed_bonus"`
	LuckBonus  float64 `json:"luck_bonus,omitempty" yaml:"luck_bonus"`
	Attack     float64 `json:"attack,omitempty" yaml:"attack"`
	Defense    float64 `json:"defense,omitempty" yaml:"defense"`
}

type EquipmentItem struct {
	ID              string       `json:"id"`
	Durability      int          `json:"durability"`
	MaxDurability   int          `json:"max_durability"`
	Stats           *ItemStats   `json:"stats,omitempty"`
	RelevantActions []ActionType `json:"relevant_actions,omitempty"`
}

// Usable reports whether the item can still be used. Items without a
// max durability never wear out.
func (i EquipmentItem) Usable() bool {
	return i.MaxDurability <= 0 || i.Durability > 0
}

type ItemTemplate struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Slot            Slot         `json:"slot" yaml:"slot"`
	MaxDurability   int          `json:"max_durability" yaml:"max_durability"`
	Stats           ItemStats    `json:"stats" yaml:"stats"`
	RelevantActions []ActionType `json:"relevant_actions,omitempty" yaml:"relevant_actions"`
}

type SkillState struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
	MaxXP int `json:"max_xp"`
}

type Status struct {
	Stamina int `json:"stamina"`
	HP      int `json:"hp"`
	Morale  int `json:"morale"`
}

type ActiveProcess struct {
	ID            string        `json:"id"`
	Type          ProcessType   `json:"type"`
	ItemID        string        `json:"item_id"`
	LocationID    string        `json:"location_id"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	ReadyAt       time.Time     `json:"ready_at"`
	Notified      bool          `json:"notified"`
	MaintainCount int           `json:"maintain_count,omitempty"`
	YieldBonus    float64       `json:"yield_bonus,omitempty"`
	RecipeID      string        `json:"recipe_id,omitempty"`
}

// IsReady reports readyAt <= now.
func (p ActiveProcess) IsReady(now time.Time) bool {
	return !now.Before(p.ReadyAt)
}

func (p ActiveProcess) Remaining(now time.Time) time.Duration {
	if p.IsReady(now) {
		return 0
	}
	return p.ReadyAt.Sub(now)
}

type Buff struct {
	Type      BuffType  `json:"type"`
	Value     float64   `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (b Buff) Active(now time.Time) bool {
	return b.ExpiresAt.After(now)
}

type Player struct {
	ID              string                   `json:"id"`
	RoomID          string                   `json:"room_id"`
	Name            string                   `json:"name,omitempty"`
	Resources       map[string]float64       `json:"resources"`
	Status          Status                   `json:"status"`
	Skills          map[SkillType]SkillState `json:"skills"`
	Equipment       map[Slot]*EquipmentItem  `json:"equipment"`
	Inventory       []EquipmentItem          `json:"inventory"`
	ActiveProcesses []ActiveProcess          `json:"active_processes"`
	ActiveBuffs     []Buff                   `json:"active_buffs"`
	RegionID        string                   `json:"region_id"`
	Role            string                   `json:"role"`
	Version         int64                    `json:"version"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type Settlement struct {
	Name     string         `json:"name,omitempty"`
	Upgrades map[string]int `json:"upgrades,omitempty"`
}

// WorldContext is the read-only room snapshot an action is resolved against.
type WorldContext struct {
	RoomID     string     `json:"room_id"`
	Season     Season     `json:"season"`
	Weather    Weather    `json:"weather"`
	GameTick   int64      `json:"game_tick"`
	ActiveLaws []string   `json:"active_laws,omitempty"`
	Settlement Settlement `json:"settlement"`
}

type YieldEntry struct {
	Resource string  `json:"resource"`
	Amount   float64 `json:"amount"`
	Jackpot  bool    `json:"jackpot,omitempty"`
	Bonus    bool    `json:"bonus,omitempty"`
}

type XPEntry struct {
	Skill   SkillType `json:"skill"`
	Amount  int       `json:"amount"`
	LevelUp bool      `json:"level_up,omitempty"`
}

type DurabilityEntry struct {
	Item   string `json:"item"`
	Amount int    `json:"amount"`
	Broken bool   `json:"broken,omitempty"`
}

type ActionResult struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Utbytte    []YieldEntry      `json:"utbytte"`
	XP         []XPEntry         `json:"xp"`
	Durability []DurabilityEntry `json:"durability"`
}

func NewActionResult() ActionResult {
	return ActionResult{
		Utbytte:    []YieldEntry{},
		XP:         []XPEntry{},
		Durability: []DurabilityEntry{},
	}
}

func (r *ActionResult) Fail(reason string) {
	r.Success = false
	r.Message = reason
}

// Check is the outcome of a requirement gate. Reason is only set on failure.
type Check struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

func Pass() Check { return Check{Success: true} }

func Fail(reason string) Check { return Check{Reason: reason} }
