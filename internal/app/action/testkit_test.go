package action

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
)

var testNow = time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

type stubTxManager struct {
	mu *sync.Mutex
}

func (m stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.mu != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	return fn(ctx)
}

type stubPlayerRepo struct {
	mu         sync.Mutex
	byID       map[string]economy.Player
	saves      int
	beforeSave func(r *stubPlayerRepo)
}

func newStubPlayerRepo(players ...economy.Player) *stubPlayerRepo {
	r := &stubPlayerRepo{byID: map[string]economy.Player{}}
	for _, p := range players {
		r.byID[p.ID] = p
	}
	return r
}

func (r *stubPlayerRepo) GetByID(_ context.Context, playerID string) (economy.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[playerID]
	if !ok {
		return economy.Player{}, ports.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *stubPlayerRepo) Create(_ context.Context, player economy.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[player.ID]; ok {
		return ports.ErrConflict
	}
	r.byID[player.ID] = player.Clone()
	return nil
}

func (r *stubPlayerRepo) SaveWithVersion(_ context.Context, player economy.Player, expectedVersion int64) error {
	if hook := r.beforeSave; hook != nil {
		r.beforeSave = nil
		hook(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[player.ID]
	if !ok && expectedVersion != 0 {
		return ports.ErrConflict
	}
	if ok && current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byID[player.ID] = player.Clone()
	r.saves++
	return nil
}

func (r *stubPlayerRepo) get(id string) economy.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].Clone()
}

type stubActionRepo struct {
	mu    sync.Mutex
	byKey map[string]ports.ActionExecutionRecord
}

func newStubActionRepo() *stubActionRepo {
	return &stubActionRepo{byKey: map[string]ports.ActionExecutionRecord{}}
}

func (r *stubActionRepo) GetByIdempotencyKey(_ context.Context, playerID, key string) (*ports.ActionExecutionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byKey[playerID+"|"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := record
	return &copy, nil
}

func (r *stubActionRepo) SaveExecution(_ context.Context, execution ports.ActionExecutionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[execution.PlayerID+"|"+execution.IdempotencyKey] = execution
	return nil
}

type stubRooms struct {
	world economy.WorldContext
	err   error
}

func (s stubRooms) Snapshot(_ context.Context, roomID string) (economy.WorldContext, error) {
	if s.err != nil {
		return economy.WorldContext{}, s.err
	}
	w := s.world
	w.RoomID = roomID
	return w, nil
}

type stubFeed struct {
	mu      sync.Mutex
	entries []ports.FeedEntry
}

func (f *stubFeed) Append(_ context.Context, entry ports.FeedEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *stubFeed) ListRecent(_ context.Context, _ string, _ int) ([]ports.FeedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ports.FeedEntry(nil), f.entries...), nil
}

type stubMetrics struct {
	mu                                          sync.Mutex
	success, rejected, retry, conflict, failure int
}

func (m *stubMetrics) RecordSuccess(economy.ActionType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.success++
}

func (m *stubMetrics) RecordRejected(economy.ActionType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected++
}

func (m *stubMetrics) RecordRetry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retry++
}

func (m *stubMetrics) RecordConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflict++
}

func (m *stubMetrics) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure++
}

func testCatalog(t *testing.T) *economy.Registry {
	t.Helper()
	reg, err := economy.NewRegistry(economy.Definition{
		Resources: map[string]string{
			"grain": "korn",
			"wood":  "tømmer",
			"meat":  "kjøtt",
			"wool":  "ull",
			"honey": "honning",
			"seed":  "såkorn",
			"eggs":  "egg",
			"water": "vann",
			"fish":  "fisk",
			"flour": "mel",
			"bread": "brød",
		},
		Templates: []economy.ItemTemplate{
			{ID: "scythe", Name: "Ljå", Slot: economy.SlotScythe, MaxDurability: 50, Stats: economy.ItemStats{YieldBonus: 2}},
			{ID: "axe", Name: "Øks", Slot: economy.SlotAxe, MaxDurability: 40, Stats: economy.ItemStats{YieldBonus: 1}, RelevantActions: []economy.ActionType{economy.ActionChop}},
			{ID: "bow", Name: "Bue", Slot: economy.SlotBow, MaxDurability: 30, RelevantActions: []economy.ActionType{economy.ActionHunt}},
			{ID: "shears", Name: "Saks", Slot: economy.SlotShears, MaxDurability: 30, RelevantActions: []economy.ActionType{economy.ActionGatherWool}},
			{ID: "knife", Name: "Kniv", Slot: economy.SlotMainHand, MaxDurability: 20},
		},
		Actions: map[economy.ActionType]economy.ActionRule{
			economy.ActionWork:         {Skill: economy.SkillFarming, Stamina: 10, Output: "grain", BaseYield: 10, XP: 10, LuckyDrop: economy.LuckyDropChance},
			economy.ActionChop:         {Skill: economy.SkillWoodcutting, Stamina: 12, Output: "wood", BaseYield: 4, XP: 12},
			economy.ActionHunt:         {Skill: economy.SkillHunting, Stamina: 12, Output: "meat", BaseYield: 2, XP: 12, Cooldown: 30 * time.Minute},
			economy.ActionGatherWool:   {Skill: economy.SkillGathering, Stamina: 8, Output: "wool", BaseYield: 3, XP: 8, RequiresTool: true},
			economy.ActionGatherHoney:  {Skill: economy.SkillGathering, Stamina: 4, Output: "honey", BaseYield: 2, XP: 5},
			economy.ActionPlant:        {Skill: economy.SkillFarming, Stamina: 5, XP: 5},
			economy.ActionTend:         {Skill: economy.SkillFarming, Stamina: 2, XP: 2},
			economy.ActionHarvest:      {Skill: economy.SkillFarming, Stamina: 5},
			economy.ActionFeedChickens: {Skill: economy.SkillFarming, Stamina: 3, Costs: map[string]float64{"grain": 1}, Output: "eggs", XP: 3},
			economy.ActionCollectEggs:  {Skill: economy.SkillFarming, Stamina: 1, Output: "eggs", BaseYield: 3, XP: 2},
			economy.ActionDrawWater:    {Stamina: 3, Output: "water", BaseYield: 5},
			economy.ActionHangRack:     {Skill: economy.SkillCrafting, Stamina: 2},
			economy.ActionCollectRack:  {Skill: economy.SkillCrafting, Stamina: 1},
			economy.ActionRefine:       {Skill: economy.SkillCrafting, Stamina: 8, XP: 8},
			economy.ActionCraft:        {Skill: economy.SkillCrafting, Stamina: 10, XP: 10},
			economy.ActionSleep:        {Cooldown: 8 * time.Hour},
			economy.ActionEat:          {},
		},
		Recipes: []economy.Recipe{
			{ID: "flour", Name: "Mel", Kind: economy.RecipeRefine, Stamina: 6, Inputs: map[string]float64{"grain": 3}, Outputs: map[string]float64{"flour": 2}, XP: 6},
			{ID: "bow_recipe", Name: "Bue", Kind: economy.RecipeCraft, Inputs: map[string]float64{"wood": 3}, OutputItem: "bow", XP: 12},
			{ID: "dried_fish", Name: "Tørrfisk", Kind: economy.RecipeRack, Inputs: map[string]float64{"fish": 2}, Outputs: map[string]float64{"fish_dried": 2}, Duration: 2 * time.Hour, XP: 6},
		},
		Crops: []economy.Crop{
			{ID: "barley", Name: "Bygg", Seed: "seed", SeedCost: 2, Output: "grain", MinYield: 4, MaxYield: 10, GrowTime: 3 * time.Hour, XP: 15},
		},
		Foods: []economy.Food{{Resource: "bread", Stamina: 25, Morale: 5}},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return reg
}

// newTestPlayer has no equipment and every skill at level zero.
func newTestPlayer(id string) economy.Player {
	p := economy.NewPlayer(id, "room-1", "", testNow.Add(-time.Hour))
	for k := range p.Skills {
		p.Skills[k] = economy.SkillState{Level: 0, MaxXP: economy.StartingMaxXP}
	}
	p.Version = 1
	return p
}

func equip(p *economy.Player, slot economy.Slot, item economy.EquipmentItem) {
	if p.Equipment == nil {
		p.Equipment = map[economy.Slot]*economy.EquipmentItem{}
	}
	cp := item
	p.Equipment[slot] = &cp
}

func springDay() economy.WorldContext {
	return economy.WorldContext{Season: economy.SeasonSpring, Weather: economy.WeatherClear, GameTick: 12}
}

type fixture struct {
	repo    *stubPlayerRepo
	actions *stubActionRepo
	feed    *stubFeed
	metrics *stubMetrics
	uc      UseCase
}

func newFixture(t *testing.T, players ...economy.Player) *fixture {
	t.Helper()
	f := &fixture{
		repo:    newStubPlayerRepo(players...),
		actions: newStubActionRepo(),
		feed:    &stubFeed{},
		metrics: &stubMetrics{},
	}
	var ids atomic.Int64
	f.uc = UseCase{
		TxManager:  stubTxManager{},
		Players:    f.repo,
		ActionRepo: f.actions,
		Feed:       f.feed,
		Rooms:      stubRooms{world: springDay()},
		Metrics:    f.metrics,
		Catalog:    testCatalog(t),
		Now:        func() time.Time { return testNow },
		Rand:       func() float64 { return 0.99 },
		NewID: func() string {
			return fmt.Sprintf("id-%04d", ids.Add(1))
		},
		NewFeedID: func() string { return "feed" },
	}
	return f
}

func (f *fixture) run(t *testing.T, playerID string, payload economy.Payload) Response {
	t.Helper()
	out, err := f.uc.Execute(context.Background(), Request{PlayerID: playerID, Payload: payload})
	if err != nil {
		t.Fatalf("execute %s: %v", payload.Type, err)
	}
	return out
}

func perf(v float64) *float64 { return &v }
