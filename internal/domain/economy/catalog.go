package economy

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type RecipeKind string

const (
	RecipeRefine RecipeKind = "REFINE"
	RecipeCraft  RecipeKind = "CRAFT"
	RecipeRack   RecipeKind = "RACK"
)

// ActionRule is the static cost and reward table entry of one action type.
type ActionRule struct {
	Skill        SkillType          `json:"skill" yaml:"skill"`
	Stamina      int                `json:"stamina" yaml:"stamina"`
	Costs        map[string]float64 `json:"costs,omitempty" yaml:"costs"`
	Output       string             `json:"output,omitempty" yaml:"output"`
	BaseYield    int                `json:"base_yield,omitempty" yaml:"base_yield"`
	XP           int                `json:"xp" yaml:"xp"`
	Cooldown     time.Duration      `json:"cooldown,omitempty" yaml:"cooldown"`
	Process      time.Duration      `json:"process,omitempty" yaml:"process"`
	ToolWear     int                `json:"tool_wear,omitempty" yaml:"tool_wear"`
	RequiresTool bool               `json:"requires_tool,omitempty" yaml:"requires_tool"`
	LuckyDrop    float64            `json:"lucky_drop,omitempty" yaml:"lucky_drop"`
}

type Recipe struct {
	ID         string             `json:"id" yaml:"id"`
	Name       string             `json:"name" yaml:"name"`
	Kind       RecipeKind         `json:"kind" yaml:"kind"`
	Stamina    int                `json:"stamina" yaml:"stamina"`
	Inputs     map[string]float64 `json:"inputs" yaml:"inputs"`
	Outputs    map[string]float64 `json:"outputs,omitempty" yaml:"outputs"`
	OutputItem string             `json:"output_item,omitempty" yaml:"output_item"`
	Duration   time.Duration      `json:"duration,omitempty" yaml:"duration"`
	XP         int                `json:"xp" yaml:"xp"`
}

type Crop struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Seed     string        `json:"seed" yaml:"seed"`
	SeedCost float64       `json:"seed_cost" yaml:"seed_cost"`
	Output   string        `json:"output" yaml:"output"`
	MinYield int           `json:"min_yield" yaml:"min_yield"`
	MaxYield int           `json:"max_yield" yaml:"max_yield"`
	GrowTime time.Duration `json:"grow_time" yaml:"grow_time"`
	XP       int           `json:"xp" yaml:"xp"`
}

type Food struct {
	Resource string `json:"resource" yaml:"resource"`
	Stamina  int    `json:"stamina" yaml:"stamina"`
	Morale   int    `json:"morale,omitempty" yaml:"morale"`
}

// Law multiplies yields of the listed actions, or of every action when the
// list is empty.
type Law struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	YieldMultiplier float64      `json:"yield_multiplier" yaml:"yield_multiplier"`
	Actions         []ActionType `json:"actions,omitempty" yaml:"actions"`
}

type Upgrade struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	BonusPerLevel float64      `json:"bonus_per_level" yaml:"bonus_per_level"`
	Actions       []ActionType `json:"actions,omitempty" yaml:"actions"`
}

// Definition is the document form of the catalog.
type Definition struct {
	Resources      map[string]string                  `json:"resources" yaml:"resources"`
	Templates      []ItemTemplate                     `json:"templates" yaml:"templates"`
	Actions        map[ActionType]ActionRule          `json:"actions" yaml:"actions"`
	Recipes        []Recipe                           `json:"recipes" yaml:"recipes"`
	Crops          []Crop                             `json:"crops" yaml:"crops"`
	Foods          []Food                             `json:"foods" yaml:"foods"`
	Laws           []Law                              `json:"laws,omitempty" yaml:"laws"`
	Upgrades       []Upgrade                          `json:"upgrades,omitempty" yaml:"upgrades"`
	SeasonStamina  map[Season]float64                 `json:"season_stamina,omitempty" yaml:"season_stamina"`
	WeatherStamina map[Weather]float64                `json:"weather_stamina,omitempty" yaml:"weather_stamina"`
	SeasonYield    map[Season]map[ActionType]float64  `json:"season_yield,omitempty" yaml:"season_yield"`
	WeatherYield   map[Weather]map[ActionType]float64 `json:"weather_yield,omitempty" yaml:"weather_yield"`
}

// Registry is the immutable, validated catalog. Build it once with
// NewRegistry and share it.
type Registry struct {
	def       Definition
	templates map[string]ItemTemplate
	prefixes  []string
	recipes   map[string]Recipe
	crops     map[string]Crop
	foods     map[string]Food
	laws      map[string]Law
	upgrades  map[string]Upgrade
}

func NewRegistry(def Definition) (*Registry, error) {
	r := &Registry{
		def:       def,
		templates: make(map[string]ItemTemplate, len(def.Templates)),
		recipes:   make(map[string]Recipe, len(def.Recipes)),
		crops:     make(map[string]Crop, len(def.Crops)),
		foods:     make(map[string]Food, len(def.Foods)),
		laws:      make(map[string]Law, len(def.Laws)),
		upgrades:  make(map[string]Upgrade, len(def.Upgrades)),
	}
	for _, t := range def.Templates {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog: template without id")
		}
		if _, dup := r.templates[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate template %q", id)
		}
		if t.MaxDurability < 0 {
			return nil, fmt.Errorf("catalog: template %q has negative max_durability", id)
		}
		r.templates[id] = t
		r.prefixes = append(r.prefixes, id)
	}
	sort.SliceStable(r.prefixes, func(i, j int) bool {
		if len(r.prefixes[i]) != len(r.prefixes[j]) {
			return len(r.prefixes[i]) > len(r.prefixes[j])
		}
		return r.prefixes[i] < r.prefixes[j]
	})

	for _, rc := range def.Recipes {
		if rc.ID == "" {
			return nil, fmt.Errorf("catalog: recipe without id")
		}
		if _, dup := r.recipes[rc.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate recipe %q", rc.ID)
		}
		switch rc.Kind {
		case RecipeRefine, RecipeCraft:
		case RecipeRack:
			if rc.Duration <= 0 {
				return nil, fmt.Errorf("catalog: rack recipe %q needs a duration", rc.ID)
			}
		default:
			return nil, fmt.Errorf("catalog: recipe %q has unknown kind %q", rc.ID, rc.Kind)
		}
		if rc.OutputItem != "" {
			if _, ok := r.templates[rc.OutputItem]; !ok {
				return nil, fmt.Errorf("catalog: recipe %q produces unknown item %q", rc.ID, rc.OutputItem)
			}
		}
		r.recipes[rc.ID] = rc
	}
	for _, c := range def.Crops {
		if c.ID == "" {
			return nil, fmt.Errorf("catalog: crop without id")
		}
		if c.MinYield < 0 || c.MaxYield < c.MinYield {
			return nil, fmt.Errorf("catalog: crop %q has invalid yield range %d..%d", c.ID, c.MinYield, c.MaxYield)
		}
		if c.GrowTime <= 0 {
			return nil, fmt.Errorf("catalog: crop %q needs a grow_time", c.ID)
		}
		r.crops[c.ID] = c
	}
	for _, f := range def.Foods {
		r.foods[f.Resource] = f
	}
	for _, l := range def.Laws {
		r.laws[l.ID] = l
	}
	for _, u := range def.Upgrades {
		r.upgrades[u.ID] = u
	}
	return r, nil
}

// Definition returns the document the registry was built from. Callers must
// treat it as read-only.
func (r *Registry) Definition() Definition {
	return r.def
}

func (r *Registry) Template(id string) (ItemTemplate, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// ResolveTemplateID maps an instance id to its template id: an exact match
// wins, otherwise the longest template id followed by "_" that prefixes it.
func (r *Registry) ResolveTemplateID(itemID string) (string, bool) {
	if r == nil || itemID == "" {
		return "", false
	}
	if _, ok := r.templates[itemID]; ok {
		return itemID, true
	}
	for _, p := range r.prefixes {
		if len(itemID) > len(p)+1 && strings.HasPrefix(itemID, p) && itemID[len(p)] == '_' {
			return p, true
		}
	}
	return "", false
}

func (r *Registry) TemplateFor(itemID string) (ItemTemplate, bool) {
	id, ok := r.ResolveTemplateID(itemID)
	if !ok {
		return ItemTemplate{}, false
	}
	return r.templates[id], true
}

func (r *Registry) Rule(action ActionType) (ActionRule, bool) {
	rule, ok := r.def.Actions[action]
	return rule, ok
}

func (r *Registry) Recipe(id string) (Recipe, bool) {
	rc, ok := r.recipes[id]
	return rc, ok
}

func (r *Registry) RecipeIDs() []string {
	ids := make([]string, 0, len(r.recipes))
	for id := range r.recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Crop(id string) (Crop, bool) {
	c, ok := r.crops[id]
	return c, ok
}

func (r *Registry) Food(resource string) (Food, bool) {
	f, ok := r.foods[resource]
	return f, ok
}

// ResourceName returns the display name of a resource, falling back to its id.
func (r *Registry) ResourceName(id string) string {
	if name, ok := r.def.Resources[id]; ok && name != "" {
		return name
	}
	return id
}

func (r *Registry) SeasonStaminaMod(s Season) float64 {
	return positiveOr(r.def.SeasonStamina[s], 1)
}

func (r *Registry) WeatherStaminaMod(w Weather) float64 {
	return positiveOr(r.def.WeatherStamina[w], 1)
}

func (r *Registry) SeasonYieldMod(s Season, action ActionType) float64 {
	return positiveOr(r.def.SeasonYield[s][action], 1)
}

func (r *Registry) WeatherYieldMod(w Weather, action ActionType) float64 {
	return positiveOr(r.def.WeatherYield[w][action], 1)
}

// LawMultiplier is the product of the yield multipliers of every active law
// that applies to action. Unknown law ids are ignored.
func (r *Registry) LawMultiplier(active []string, action ActionType) float64 {
	m := 1.0
	for _, id := range active {
		law, ok := r.laws[id]
		if !ok || !appliesTo(law.Actions, action) {
			continue
		}
		m *= positiveOr(law.YieldMultiplier, 1)
	}
	return m
}

func (r *Registry) UpgradeMultiplier(levels map[string]int, action ActionType) float64 {
	m := 1.0
	for id, level := range levels {
		up, ok := r.upgrades[id]
		if !ok || level <= 0 || !appliesTo(up.Actions, action) {
			continue
		}
		m *= 1 + float64(level)*up.BonusPerLevel
	}
	return m
}

func appliesTo(actions []ActionType, action ActionType) bool {
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
