package status

import "hearthvale/internal/domain/economy"

type Request struct {
	PlayerID string
}

type ProcessView struct {
	ID               string              `json:"id"`
	Type             economy.ProcessType `json:"type"`
	ItemID           string              `json:"item_id"`
	LocationID       string              `json:"location_id"`
	State            string              `json:"state"`
	RemainingSeconds int                 `json:"remaining_seconds"`
	MaintainCount    int                 `json:"maintain_count,omitempty"`
	YieldBonus       float64             `json:"yield_bonus,omitempty"`
}

type Response struct {
	Player             economy.Player       `json:"player"`
	World              economy.WorldContext `json:"world"`
	TimeOfDay          string               `json:"time_of_day"`
	NextPhaseInSeconds int                  `json:"next_phase_in_seconds"`
	Processes          []ProcessView        `json:"processes"`
	Cooldowns          map[string]int       `json:"cooldowns"`
	Buffs              []economy.Buff       `json:"buffs"`
}
