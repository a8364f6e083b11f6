package economy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Payload is the loose wire form of an action. ParseAction is the only
// reader of it.
type Payload struct {
	Type        string   `json:"type"`
	LocationID  string   `json:"location_id,omitempty"`
	Performance *float64 `json:"performance,omitempty"`
	RecipeID    string   `json:"recipe_id,omitempty"`
	SubType     string   `json:"sub_type,omitempty"`
	Method      string   `json:"method,omitempty"`
	CropID      string   `json:"crop_id,omitempty"`
	ItemID      string   `json:"item_id,omitempty"`
}

// Action is the closed set of parsed actions.
type Action interface {
	Type() ActionType
	Location() string
	isAction()
}

type GatherAction struct {
	Kind        ActionType
	LocationID  string
	Method      string
	Performance float64
}

type PlantAction struct {
	LocationID string
	CropID     string
}

type TendAction struct {
	LocationID string
}

type HarvestAction struct {
	LocationID  string
	Performance float64
}

type FeedChickensAction struct {
	LocationID string
}

type CollectEggsAction struct {
	LocationID string
}

type DrawWaterAction struct {
	LocationID string
}

type HangRackAction struct {
	LocationID string
	RecipeID   string
}

type CollectRackAction struct {
	LocationID string
}

type RefineAction struct {
	RecipeID    string
	Performance float64
}

type CraftAction struct {
	RecipeID    string
	Performance float64
}

type SleepAction struct{}

type EatAction struct {
	Food string
}

func (a GatherAction) Type() ActionType       { return a.Kind }
func (a PlantAction) Type() ActionType        { return ActionPlant }
func (a TendAction) Type() ActionType         { return ActionTend }
func (a HarvestAction) Type() ActionType      { return ActionHarvest }
func (a FeedChickensAction) Type() ActionType { return ActionFeedChickens }
func (a CollectEggsAction) Type() ActionType  { return ActionCollectEggs }
func (a DrawWaterAction) Type() ActionType    { return ActionDrawWater }
func (a HangRackAction) Type() ActionType     { return ActionHangRack }
func (a CollectRackAction) Type() ActionType  { return ActionCollectRack }
func (a RefineAction) Type() ActionType       { return ActionRefine }
func (a CraftAction) Type() ActionType        { return ActionCraft }
func (a SleepAction) Type() ActionType        { return ActionSleep }
func (a EatAction) Type() ActionType          { return ActionEat }

func (a GatherAction) Location() string       { return a.LocationID }
func (a PlantAction) Location() string        { return a.LocationID }
func (a TendAction) Location() string         { return a.LocationID }
func (a HarvestAction) Location() string      { return a.LocationID }
func (a FeedChickensAction) Location() string { return a.LocationID }
func (a CollectEggsAction) Location() string  { return a.LocationID }
func (a DrawWaterAction) Location() string    { return a.LocationID }
func (a HangRackAction) Location() string     { return a.LocationID }
func (a CollectRackAction) Location() string  { return a.LocationID }
func (a RefineAction) Location() string       { return "" }
func (a CraftAction) Location() string        { return "" }
func (a SleepAction) Location() string        { return "" }
func (a EatAction) Location() string          { return "" }

func (GatherAction) isAction()       {}
func (PlantAction) isAction()        {}
func (TendAction) isAction()         {}
func (HarvestAction) isAction()      {}
func (FeedChickensAction) isAction() {}
func (CollectEggsAction) isAction()  {}
func (DrawWaterAction) isAction()    {}
func (HangRackAction) isAction()     {}
func (CollectRackAction) isAction()  {}
func (RefineAction) isAction()       {}
func (CraftAction) isAction()        {}
func (SleepAction) isAction()        {}
func (EatAction) isAction()          {}

var gatherKinds = map[ActionType]bool{
	ActionWork:        true,
	ActionChop:        true,
	ActionMine:        true,
	ActionQuarry:      true,
	ActionForage:      true,
	ActionHunt:        true,
	ActionGatherWool:  true,
	ActionGatherHoney: true,
}

// KnownActionTypes lists every accepted action type, sorted.
func KnownActionTypes() []ActionType {
	out := make([]ActionType, 0, len(gatherKinds)+12)
	for k := range gatherKinds {
		out = append(out, k)
	}
	out = append(out,
		ActionPlant, ActionTend, ActionHarvest, ActionFeedChickens, ActionCollectEggs,
		ActionDrawWater, ActionHangRack, ActionCollectRack, ActionRefine, ActionCraft,
		ActionSleep, ActionEat,
	)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type UnknownActionError struct {
	Type       string
	Suggestion string
}

func (e *UnknownActionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown action %q, did you mean %q?", e.Type, e.Suggestion)
	}
	return fmt.Sprintf("unknown action %q", e.Type)
}

// InvalidActionError is a known action missing a field it needs.
type InvalidActionError struct {
	Type   ActionType
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Type, e.Reason)
}

// ParseAction turns a payload into its variant. REFINE_x and CRAFT_x carry
// the recipe in the type; a bare recipe id is treated as CRAFT, or as REFINE
// when the recipe is a refining one.
func ParseAction(reg *Registry, in Payload) (Action, error) {
	raw := strings.ToUpper(strings.TrimSpace(in.Type))
	perf := DefaultPerformance
	if in.Performance != nil {
		perf = clamp01(*in.Performance)
	}
	recipe := firstNonEmpty(in.RecipeID, in.SubType)

	switch {
	case strings.HasPrefix(raw, "REFINE_"):
		return RefineAction{RecipeID: strings.ToLower(strings.TrimPrefix(raw, "REFINE_")), Performance: perf}, nil
	case strings.HasPrefix(raw, "CRAFT_"):
		return CraftAction{RecipeID: strings.ToLower(strings.TrimPrefix(raw, "CRAFT_")), Performance: perf}, nil
	}

	t := ActionType(raw)
	if gatherKinds[t] {
		return GatherAction{Kind: t, LocationID: in.LocationID, Method: in.Method, Performance: perf}, nil
	}
	switch t {
	case ActionPlant:
		if in.CropID == "" {
			return nil, &InvalidActionError{Type: t, Reason: "crop_id is required"}
		}
		if in.LocationID == "" {
			return nil, &InvalidActionError{Type: t, Reason: "location_id is required"}
		}
		return PlantAction{LocationID: in.LocationID, CropID: in.CropID}, nil
	case ActionTend, ActionHarvest, ActionFeedChickens, ActionCollectEggs, ActionDrawWater, ActionHangRack, ActionCollectRack:
		if in.LocationID == "" {
			return nil, &InvalidActionError{Type: t, Reason: "location_id is required"}
		}
		switch t {
		case ActionTend:
			return TendAction{LocationID: in.LocationID}, nil
		case ActionHarvest:
			return HarvestAction{LocationID: in.LocationID, Performance: perf}, nil
		case ActionFeedChickens:
			return FeedChickensAction{LocationID: in.LocationID}, nil
		case ActionCollectEggs:
			return CollectEggsAction{LocationID: in.LocationID}, nil
		case ActionDrawWater:
			return DrawWaterAction{LocationID: in.LocationID}, nil
		case ActionHangRack:
			if recipe == "" {
				return nil, &InvalidActionError{Type: t, Reason: "recipe_id is required"}
			}
			return HangRackAction{LocationID: in.LocationID, RecipeID: recipe}, nil
		default:
			return CollectRackAction{LocationID: in.LocationID}, nil
		}
	case ActionRefine:
		if recipe == "" {
			return nil, &InvalidActionError{Type: t, Reason: "recipe_id is required"}
		}
		return RefineAction{RecipeID: recipe, Performance: perf}, nil
	case ActionCraft:
		if recipe == "" {
			return nil, &InvalidActionError{Type: t, Reason: "recipe_id is required"}
		}
		return CraftAction{RecipeID: recipe, Performance: perf}, nil
	case ActionSleep:
		return SleepAction{}, nil
	case ActionEat:
		if in.ItemID == "" {
			return nil, &InvalidActionError{Type: t, Reason: "item_id is required"}
		}
		return EatAction{Food: in.ItemID}, nil
	}

	if reg != nil {
		id := strings.ToLower(strings.TrimSpace(in.Type))
		if rc, ok := reg.Recipe(id); ok {
			if rc.Kind == RecipeRefine {
				return RefineAction{RecipeID: id, Performance: perf}, nil
			}
			if rc.Kind == RecipeCraft {
				return CraftAction{RecipeID: id, Performance: perf}, nil
			}
		}
	}
	return nil, &UnknownActionError{Type: in.Type, Suggestion: suggestAction(raw)}
}

func suggestAction(raw string) string {
	if raw == "" {
		return ""
	}
	best := ""
	bestDist := math.MaxInt
	for _, t := range KnownActionTypes() {
		d := levenshtein.ComputeDistance(raw, string(t))
		if d < bestDist {
			best, bestDist = string(t), d
		}
	}
	if bestDist > max(2, len(raw)/3) {
		return ""
	}
	return best
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
