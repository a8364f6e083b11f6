package economy

// ActionEquipmentMap lists, per action, the slots whose items take part in
// the action.
var ActionEquipmentMap = map[ActionType][]Slot{
	ActionWork:        {SlotScythe, SlotMainHand},
	ActionChop:        {SlotAxe, SlotOffHand},
	ActionMine:        {SlotPickaxe, SlotOffHand},
	ActionQuarry:      {SlotChisel, SlotPickaxe},
	ActionForage:      {SlotMainHand},
	ActionHunt:        {SlotBow, SlotTrap},
	ActionGatherWool:  {SlotShears},
	ActionGatherHoney: {SlotMainHand},
	ActionHarvest:     {SlotScythe, SlotMainHand},
	ActionRefine:      {SlotMainHand},
	ActionCraft:       {SlotMainHand},
}

var toolSlots = map[Slot]bool{
	SlotAxe:      true,
	SlotPickaxe:  true,
	SlotScythe:   true,
	SlotMainHand: true,
	SlotOffHand:  true,
	SlotBow:      true,
	SlotTrap:     true,
	SlotChisel:   true,
	SlotShears:   true,
}

func IsToolSlot(s Slot) bool {
	return toolSlots[s]
}

// EffectiveStats returns the instance stats when present, else the template's.
func EffectiveStats(reg *Registry, item *EquipmentItem) ItemStats {
	if item == nil {
		return ItemStats{}
	}
	if item.Stats != nil {
		return *item.Stats
	}
	if t, ok := reg.TemplateFor(item.ID); ok {
		return t.Stats
	}
	return ItemStats{}
}

func relevantActionsOf(reg *Registry, item *EquipmentItem) []ActionType {
	if len(item.RelevantActions) > 0 {
		return item.RelevantActions
	}
	if t, ok := reg.TemplateFor(item.ID); ok {
		return t.RelevantActions
	}
	return nil
}

// listsAction is true when the item explicitly names action. permissive is
// true when neither the item nor its template restricts relevance.
func listsAction(reg *Registry, item *EquipmentItem, action ActionType) (listed, permissive bool) {
	actions := relevantActionsOf(reg, item)
	if len(actions) == 0 {
		return false, true
	}
	for _, a := range actions {
		if a == action {
			return true, false
		}
	}
	return false, false
}

// ActionSlots returns the mapped slots of action holding an item that is
// relevant to it: the item lists the action, or declares no relevance list.
func ActionSlots(reg *Registry, p *Player, action ActionType) []Slot {
	mapped := ActionEquipmentMap[action]
	if len(mapped) == 0 || p == nil {
		return nil
	}
	out := make([]Slot, 0, len(mapped))
	for _, slot := range mapped {
		item := p.Equipment[slot]
		if item == nil {
			continue
		}
		listed, permissive := listsAction(reg, item, action)
		if listed || permissive {
			out = append(out, slot)
		}
	}
	return out
}

type EquippedItem struct {
	Slot Slot
	Item *EquipmentItem
}

// RelevantEquipment returns equipped items taking part in action, in
// canonical slot order. Items in the action's mapped slots count when they
// are not restricted to other actions; items anywhere else count only when
// they list the action explicitly. An empty action makes every item relevant.
func RelevantEquipment(reg *Registry, p *Player, action ActionType) []EquippedItem {
	if p == nil {
		return nil
	}
	mapped := map[Slot]bool{}
	for _, s := range ActionEquipmentMap[action] {
		mapped[s] = true
	}
	var out []EquippedItem
	for _, slot := range AllSlots {
		item := p.Equipment[slot]
		if item == nil {
			continue
		}
		if action == "" {
			out = append(out, EquippedItem{Slot: slot, Item: item})
			continue
		}
		listed, permissive := listsAction(reg, item, action)
		if listed || (permissive && mapped[slot]) {
			out = append(out, EquippedItem{Slot: slot, Item: item})
		}
	}
	return out
}

// BestToolForAction picks the relevant equipped item with the highest yield
// bonus. Ties keep the first item in canonical slot order. It returns nil
// when nothing qualifies.
func BestToolForAction(reg *Registry, p *Player, action ActionType) *EquipmentItem {
	var best *EquipmentItem
	bestBonus := 0.0
	for _, e := range RelevantEquipment(reg, p, action) {
		bonus := EffectiveStats(reg, e.Item).YieldBonus
		if best == nil || bonus > bestBonus {
			best = e.Item
			bestBonus = bonus
		}
	}
	return best
}

// BrokenRelevantItem returns the first relevant equipped item whose
// durability is exhausted.
func BrokenRelevantItem(reg *Registry, p *Player, action ActionType) *EquipmentItem {
	for _, e := range RelevantEquipment(reg, p, action) {
		if !e.Item.Usable() {
			return e.Item
		}
	}
	return nil
}

// ItemName is the template name of an instance, or its id.
func ItemName(reg *Registry, itemID string) string {
	if t, ok := reg.TemplateFor(itemID); ok && t.Name != "" {
		return t.Name
	}
	return itemID
}
