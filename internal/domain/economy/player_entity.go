package economy

import (
	"math"
	"time"
)

// NewPlayer seeds a fresh player with full status and level one skills.
func NewPlayer(id, roomID, regionID string, now time.Time) Player {
	skills := make(map[SkillType]SkillState, 6)
	for _, s := range []SkillType{SkillFarming, SkillWoodcutting, SkillMining, SkillGathering, SkillHunting, SkillCrafting} {
		skills[s] = SkillState{Level: 1, MaxXP: StartingMaxXP}
	}
	return Player{
		ID:              id,
		RoomID:          roomID,
		Resources:       map[string]float64{GoldResource: 10},
		Status:          Status{Stamina: MaxStamina, HP: MaxHP, Morale: MaxMorale},
		Skills:          skills,
		Equipment:       map[Slot]*EquipmentItem{},
		Inventory:       []EquipmentItem{},
		ActiveProcesses: []ActiveProcess{},
		ActiveBuffs:     []Buff{},
		RegionID:        regionID,
		Role:            "peasant",
		UpdatedAt:       now,
	}
}

// Clone returns a deep copy that shares no maps, slices or pointers with p.
func (p Player) Clone() Player {
	out := p
	out.Resources = make(map[string]float64, len(p.Resources))
	for k, v := range p.Resources {
		out.Resources[k] = v
	}
	out.Skills = make(map[SkillType]SkillState, len(p.Skills))
	for k, v := range p.Skills {
		out.Skills[k] = v
	}
	out.Equipment = make(map[Slot]*EquipmentItem, len(p.Equipment))
	for slot, item := range p.Equipment {
		if item == nil {
			continue
		}
		cp := cloneItem(*item)
		out.Equipment[slot] = &cp
	}
	out.Inventory = make([]EquipmentItem, 0, len(p.Inventory))
	for _, item := range p.Inventory {
		out.Inventory = append(out.Inventory, cloneItem(item))
	}
	out.ActiveProcesses = append([]ActiveProcess{}, p.ActiveProcesses...)
	out.ActiveBuffs = append([]Buff{}, p.ActiveBuffs...)
	return out
}

func cloneItem(item EquipmentItem) EquipmentItem {
	if item.Stats != nil {
		stats := *item.Stats
		item.Stats = &stats
	}
	if item.RelevantActions != nil {
		item.RelevantActions = append([]ActionType{}, item.RelevantActions...)
	}
	return item
}

func (p *Player) Resource(id string) float64 {
	if p.Resources == nil {
		return 0
	}
	return p.Resources[id]
}

// AddResource credits amount. Non-gold resources are kept integral.
func (p *Player) AddResource(id string, amount float64) {
	if amount <= 0 || id == "" {
		return
	}
	if p.Resources == nil {
		p.Resources = map[string]float64{}
	}
	if id != GoldResource {
		amount = math.Floor(amount + floatTolerance)
	}
	p.Resources[id] += amount
}

// ConsumeResource debits amount, refusing to go negative.
func (p *Player) ConsumeResource(id string, amount float64) bool {
	if amount <= 0 {
		return true
	}
	have := p.Resource(id)
	if have+floatTolerance < amount {
		return false
	}
	left := have - amount
	if left < floatTolerance {
		left = 0
	}
	p.Resources[id] = left
	return true
}

func (p *Player) SpendStamina(cost int) {
	p.Status.Stamina -= cost
	if p.Status.Stamina < 0 {
		p.Status.Stamina = 0
	}
}

func (p *Player) RestoreStamina(amount int) int {
	before := p.Status.Stamina
	p.Status.Stamina = min(MaxStamina, p.Status.Stamina+amount)
	return p.Status.Stamina - before
}

func (p *Player) RestoreMorale(amount int) {
	p.Status.Morale = min(MaxMorale, p.Status.Morale+amount)
}

// AwardXP adds xp to skill and rolls over levels while xp >= max_xp. Each
// level grows max_xp by LevelXPGrowth, rounded up.
func (p *Player) AwardXP(skill SkillType, amount int) XPEntry {
	entry := XPEntry{Skill: skill, Amount: amount}
	if amount <= 0 || skill == "" {
		return entry
	}
	if p.Skills == nil {
		p.Skills = map[SkillType]SkillState{}
	}
	s := p.Skills[skill]
	if s.MaxXP <= 0 {
		s.MaxXP = StartingMaxXP
	}
	s.XP += amount
	for s.XP >= s.MaxXP {
		s.XP -= s.MaxXP
		s.Level++
		s.MaxXP = int(math.Ceil(float64(s.MaxXP) * LevelXPGrowth))
		entry.LevelUp = true
	}
	p.Skills[skill] = s
	return entry
}

// WearItem lowers the durability of the item in slot. Untracked items are
// left alone and yield ok=false.
func (p *Player) WearItem(slot Slot, wear int) (DurabilityEntry, bool) {
	item := p.Equipment[slot]
	if item == nil || item.MaxDurability <= 0 || wear <= 0 {
		return DurabilityEntry{}, false
	}
	loss := min(wear, item.Durability)
	item.Durability -= loss
	return DurabilityEntry{Item: item.ID, Amount: loss, Broken: item.Durability == 0}, true
}

// PruneBuffs drops expired buffs.
func (p *Player) PruneBuffs(now time.Time) {
	kept := p.ActiveBuffs[:0]
	for _, b := range p.ActiveBuffs {
		if b.Active(now) {
			kept = append(kept, b)
		}
	}
	p.ActiveBuffs = kept
}
