package economy

import "time"

const (
	MaxStamina = 100
	MaxHP      = 100
	MaxMorale  = 100

	GatheringBonusPerLevel = 0.05
	RefiningBonusPerLevel  = 0.03

	DefaultNoToolPenalty = 0.8

	MinigameBaseMultiplier    = 0.5
	MinigamePerformanceWeight = 1.0
	DefaultPerformance        = 0.5
	JackpotPerformance        = 0.95

	RegionWest = "region_vest"
	RegionEast = "region_ost"

	RegionalRichMultiplier = 1.2
	RegionalPoorMultiplier = 0.8

	NightStaminaMultiplier = 1.2

	TicksPerDay    = 24
	NightStartHour = 20
	NightEndHour   = 6
	DaysPerSeason  = 7
	TicksPerSeason = TicksPerDay * DaysPerSeason

	MaxCropMaintains      = 3
	CropMaintainYieldStep = 0.05

	LuckyDropChance   = 0.1
	LuckyDropFraction = 0.5

	DefaultToolWear = 1

	// FallbackYield replaces a NaN or infinite intermediate yield.
	FallbackYield = 1

	LevelXPGrowth = 1.25
	StartingMaxXP = 100

	SleepStaminaRestore = 60
	SleepMoraleRestore  = 10

	floatTolerance = 1e-9
)

const GoldResource = "gold"

var DefaultProcessDurations = map[ProcessType]time.Duration{
	ProcessHive: 4 * time.Hour,
	ProcessCoop: 6 * time.Hour,
	ProcessWell: 30 * time.Minute,
}
