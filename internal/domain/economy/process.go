package economy

import (
	"fmt"
	"math"
	"time"
)

type ProcessPhase string

const (
	PhaseAbsent ProcessPhase = "absent"
	PhaseActive ProcessPhase = "active"
	PhaseReady  ProcessPhase = "ready"
)

// ProcessSpec describes a process to start. ID must be unique per player.
type ProcessSpec struct {
	ID         string
	Type       ProcessType
	ItemID     string
	LocationID string
	Duration   time.Duration
	RecipeID   string
}

// FindProcess returns the index of the process holding (type, location), or -1.
func FindProcess(p *Player, t ProcessType, location string) int {
	for i, proc := range p.ActiveProcesses {
		if proc.Type == t && proc.LocationID == location {
			return i
		}
	}
	return -1
}

func PhaseOf(p *Player, t ProcessType, location string, now time.Time) ProcessPhase {
	i := FindProcess(p, t, location)
	if i < 0 {
		return PhaseAbsent
	}
	if p.ActiveProcesses[i].IsReady(now) {
		return PhaseReady
	}
	return PhaseActive
}

// StartProcess claims the (type, location) slot. Ready leftovers in the slot
// are swept first; an active one rejects the start. A location holds one
// process type at a time, so any process of another type there, ready or
// not, rejects the start as well.
func StartProcess(p *Player, spec ProcessSpec, now time.Time) (ActiveProcess, Check) {
	for _, proc := range p.ActiveProcesses {
		if proc.LocationID != spec.LocationID {
			continue
		}
		if proc.Type != spec.Type {
			return ActiveProcess{}, Fail(fmt.Sprintf("%s is taken by a %s", spec.LocationID, processNoun(proc.Type)))
		}
		if !proc.IsReady(now) {
			return ActiveProcess{}, Fail(fmt.Sprintf("%s at %s is busy for another %s", processNoun(spec.Type), spec.LocationID, FormatWait(proc.Remaining(now))))
		}
	}
	SweepExpired(p, spec.Type, spec.LocationID, now)
	proc := ActiveProcess{
		ID:         spec.ID,
		Type:       spec.Type,
		ItemID:     spec.ItemID,
		LocationID: spec.LocationID,
		StartedAt:  now,
		Duration:   spec.Duration,
		ReadyAt:    now.Add(spec.Duration),
		RecipeID:   spec.RecipeID,
	}
	p.ActiveProcesses = append(p.ActiveProcesses, proc)
	return proc, Pass()
}

// MaintainCrop tends an active crop, adding CropMaintainYieldStep to its
// yield bonus up to MaxCropMaintains times.
func MaintainCrop(p *Player, location string, now time.Time) (ActiveProcess, Check) {
	i := FindProcess(p, ProcessCrop, location)
	if i < 0 {
		return ActiveProcess{}, Fail("nothing is growing at " + location)
	}
	proc := &p.ActiveProcesses[i]
	if proc.IsReady(now) {
		return *proc, Fail("the crop at " + location + " is ready for harvest")
	}
	if proc.MaintainCount >= MaxCropMaintains {
		return *proc, Fail("the crop at " + location + " needs no more tending")
	}
	proc.MaintainCount++
	proc.YieldBonus = math.Round((proc.YieldBonus+CropMaintainYieldStep)*1e6) / 1e6
	return *proc, Pass()
}

// CollectReady consumes the ready process at (type, location) and removes
// every other ready process sharing the location. StartProcess keeps a
// location to a single process type, so only leftovers of that type go.
func CollectReady(p *Player, t ProcessType, location string, now time.Time) (ActiveProcess, Check) {
	i := FindProcess(p, t, location)
	if i < 0 {
		return ActiveProcess{}, Fail(fmt.Sprintf("there is no %s at %s", processNoun(t), location))
	}
	proc := p.ActiveProcesses[i]
	if !proc.IsReady(now) {
		return proc, Fail(fmt.Sprintf("%s at %s is not ready, %s left", processNoun(t), location, FormatWait(proc.Remaining(now))))
	}
	kept := make([]ActiveProcess, 0, len(p.ActiveProcesses))
	for _, other := range p.ActiveProcesses {
		if other.LocationID == location && other.IsReady(now) {
			continue
		}
		kept = append(kept, other)
	}
	p.ActiveProcesses = kept
	return proc, Pass()
}

// SweepExpired removes ready processes of type at location and reports how
// many were removed.
func SweepExpired(p *Player, t ProcessType, location string, now time.Time) int {
	kept := make([]ActiveProcess, 0, len(p.ActiveProcesses))
	removed := 0
	for _, proc := range p.ActiveProcesses {
		if proc.Type == t && proc.LocationID == location && proc.IsReady(now) {
			removed++
			continue
		}
		kept = append(kept, proc)
	}
	p.ActiveProcesses = kept
	return removed
}

// CooldownLocation is the location key of an action's COOLDOWN process.
func CooldownLocation(action ActionType) string {
	return "cooldown:" + string(action)
}

// RemainingCooldown returns the time left on the action's cooldown.
func RemainingCooldown(p *Player, action ActionType, now time.Time) time.Duration {
	i := FindProcess(p, ProcessCooldown, CooldownLocation(action))
	if i < 0 {
		return 0
	}
	return p.ActiveProcesses[i].Remaining(now)
}

// StartCooldown records a cooldown for action, replacing an expired one.
func StartCooldown(p *Player, id string, action ActionType, d time.Duration, now time.Time) Check {
	if d <= 0 {
		return Pass()
	}
	_, check := StartProcess(p, ProcessSpec{
		ID:         id,
		Type:       ProcessCooldown,
		ItemID:     string(action),
		LocationID: CooldownLocation(action),
		Duration:   d,
	}, now)
	return check
}

func processNoun(t ProcessType) string {
	switch t {
	case ProcessCrop:
		return "crop"
	case ProcessHive:
		return "beehive"
	case ProcessCoop:
		return "chicken coop"
	case ProcessWell:
		return "well"
	case ProcessRack:
		return "drying rack"
	case ProcessCooldown:
		return "cooldown"
	}
	return string(t)
}

// FormatWait renders a wait rounded up to whole minutes, or seconds when
// under a minute.
func FormatWait(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(math.Ceil(d.Seconds())))
	}
	return fmt.Sprintf("%dm", int(math.Ceil(d.Minutes())))
}
