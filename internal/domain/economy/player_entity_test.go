package economy

import (
	"testing"
	"time"
)

func TestClone_SharesNothing(t *testing.T) {
	p := bareWorker()
	equip(&p, SlotAxe, EquipmentItem{ID: "axe_1", Durability: 10, MaxDurability: 40, Stats: &ItemStats{YieldBonus: 1}})
	p.Inventory = []EquipmentItem{{ID: "knife_1", RelevantActions: []ActionType{ActionForage}}}
	p.ActiveProcesses = []ActiveProcess{{ID: "a", Type: ProcessCrop}}

	c := p.Clone()
	c.Resources[GoldResource] = 99
	c.Equipment[SlotAxe].Durability = 1
	c.Equipment[SlotAxe].Stats.YieldBonus = 9
	c.Inventory[0].RelevantActions[0] = ActionChop
	c.ActiveProcesses[0].ID = "b"
	c.Skills[SkillMining] = SkillState{Level: 7}

	if p.Resources[GoldResource] != 10 || p.Equipment[SlotAxe].Durability != 10 || p.Equipment[SlotAxe].Stats.YieldBonus != 1 {
		t.Fatalf("clone leaked into original: %+v", p)
	}
	if p.Inventory[0].RelevantActions[0] != ActionForage || p.ActiveProcesses[0].ID != "a" || p.Skills[SkillMining].Level != 0 {
		t.Fatalf("clone leaked into original collections")
	}
}

func TestAwardXP_LevelsAndCarriesRemainder(t *testing.T) {
	p := NewPlayer("p1", "room-1", "", testNow)

	entry := p.AwardXP(SkillFarming, 130)
	if !entry.LevelUp {
		t.Fatalf("expected level up")
	}
	s := p.Skills[SkillFarming]
	if s.Level != 2 || s.XP != 30 || s.MaxXP != 125 {
		t.Fatalf("unexpected skill: %+v", s)
	}

	p.AwardXP(SkillFarming, 95+157)
	s = p.Skills[SkillFarming]
	if s.Level != 4 || s.XP != 0 || s.MaxXP != 197 {
		t.Fatalf("unexpected skill after double level: %+v", s)
	}
}

func TestConsumeResource_NeverNegative(t *testing.T) {
	p := NewPlayer("p1", "room-1", "", testNow)
	if p.ConsumeResource(GoldResource, 10.5) {
		t.Fatalf("expected overdraft to fail")
	}
	if !p.ConsumeResource(GoldResource, 2.25) || p.Resource(GoldResource) != 7.75 {
		t.Fatalf("unexpected gold: %v", p.Resource(GoldResource))
	}
	p.AddResource("grain", 2.9)
	if p.Resource("grain") != 2 {
		t.Fatalf("non-gold resource not integral: %v", p.Resource("grain"))
	}
}

func TestWearItem_BreaksAtZero(t *testing.T) {
	p := bareWorker()
	equip(&p, SlotAxe, EquipmentItem{ID: "axe_1", Durability: 1, MaxDurability: 40})
	equip(&p, SlotHead, EquipmentItem{ID: "lucky_hat"})

	entry, ok := p.WearItem(SlotAxe, 3)
	if !ok || entry.Amount != 1 || !entry.Broken || p.Equipment[SlotAxe].Durability != 0 {
		t.Fatalf("unexpected wear: %+v ok=%v", entry, ok)
	}
	if _, ok := p.WearItem(SlotHead, 1); ok {
		t.Fatalf("untracked item should not wear")
	}
}

func TestPruneBuffs(t *testing.T) {
	p := bareWorker()
	p.ActiveBuffs = []Buff{
		{Type: BuffYieldBonus, ExpiresAt: testNow.Add(-time.Second)},
		{Type: BuffStaminaSave, ExpiresAt: testNow.Add(time.Second)},
	}
	p.PruneBuffs(testNow)
	if len(p.ActiveBuffs) != 1 || p.ActiveBuffs[0].Type != BuffStaminaSave {
		t.Fatalf("unexpected buffs: %+v", p.ActiveBuffs)
	}
}
