package world

import (
	"hash/fnv"
	"strconv"
	"time"

	"hearthvale/internal/domain/economy"
)

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

// ClockConfig sets the room clock. One tick is one hour of game time.
type ClockConfig struct {
	StartAt      time.Time
	TickDuration time.Duration
}

type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = time.Minute
	}
	if cfg.StartAt.IsZero() {
		cfg.StartAt = time.Unix(0, 0)
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

func (c Clock) TickAt(now time.Time) int64 {
	elapsed := now.Sub(c.cfg.StartAt)
	if elapsed < 0 {
		return 0
	}
	return int64(elapsed / c.cfg.TickDuration)
}

// PhaseAt returns the phase at now and the real time until it flips.
func (c Clock) PhaseAt(now time.Time) (Phase, time.Duration) {
	tick := c.TickAt(now)
	hour := tick % economy.TicksPerDay
	into := now.Sub(c.cfg.StartAt) - time.Duration(tick)*c.cfg.TickDuration
	if into < 0 {
		into = 0
	}

	var phase Phase
	var ticksLeft int64
	switch {
	case hour >= economy.NightStartHour:
		phase = PhaseNight
		ticksLeft = economy.TicksPerDay - hour + economy.NightEndHour
	case hour < economy.NightEndHour:
		phase = PhaseNight
		ticksLeft = economy.NightEndHour - hour
	default:
		phase = PhaseDay
		ticksLeft = economy.NightStartHour - hour
	}
	return phase, time.Duration(ticksLeft)*c.cfg.TickDuration - into
}

func (c Clock) DayAt(now time.Time) int64 {
	return c.TickAt(now) / economy.TicksPerDay
}

func (c Clock) SeasonAt(now time.Time) economy.Season {
	idx := (c.TickAt(now) / economy.TicksPerSeason) % int64(len(economy.SeasonOrder))
	return economy.SeasonOrder[idx]
}

var seasonWeather = map[economy.Season][]economy.Weather{
	economy.SeasonSpring: {economy.WeatherClear, economy.WeatherClear, economy.WeatherRain, economy.WeatherFog},
	economy.SeasonSummer: {economy.WeatherClear, economy.WeatherClear, economy.WeatherClear, economy.WeatherStorm},
	economy.SeasonAutumn: {economy.WeatherClear, economy.WeatherRain, economy.WeatherFog, economy.WeatherStorm},
	economy.SeasonWinter: {economy.WeatherClear, economy.WeatherSnow, economy.WeatherSnow, economy.WeatherFog},
}

// WeatherAt draws the weather of the current day from the room id. The same
// room and day always give the same weather.
func (c Clock) WeatherAt(roomID string, now time.Time) economy.Weather {
	options := seasonWeather[c.SeasonAt(now)]
	h := fnv.New32a()
	_, _ = h.Write([]byte(roomID))
	_, _ = h.Write([]byte(":" + strconv.FormatInt(c.DayAt(now), 10)))
	return options[h.Sum32()%uint32(len(options))]
}
