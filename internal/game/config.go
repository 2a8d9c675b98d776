package game

import (
	"time"
)

// PowerupWeights holds relative draw weights for each powerup kind.
type PowerupWeights struct {
	FireUp  int `json:"fire_up" yaml:"fire_up"`
	BombUp  int `json:"bomb_up" yaml:"bomb_up"`
	SpeedUp int `json:"speed_up" yaml:"speed_up"`
	Rainbow int `json:"rainbow" yaml:"rainbow"`
	Vest    int `json:"vest" yaml:"vest"`
}

func (w PowerupWeights) total() int {
	return w.FireUp + w.BombUp + w.SpeedUp + w.Rainbow + w.Vest
}

// Config holds configurable parameters for a match.
type Config struct {
	GridRows          int           `json:"grid_rows" yaml:"grid_rows"`
	GridCols          int           `json:"grid_cols" yaml:"grid_cols"`
	FPS               int           `json:"fps" yaml:"fps"` // Ticks per second
	BombTimer         time.Duration `json:"bomb_timer" yaml:"bomb_timer"`
	ExplosionDuration time.Duration `json:"explosion_duration" yaml:"explosion_duration"`
	DestructionDelay  time.Duration `json:"destruction_delay" yaml:"destruction_delay"`
	Warmup            time.Duration `json:"warmup" yaml:"warmup"`
	RoundDuration     time.Duration `json:"round_duration" yaml:"round_duration"`
	RoundEndDelay     time.Duration `json:"round_end_delay" yaml:"round_end_delay"`
	PowerupDuration   time.Duration `json:"powerup_duration" yaml:"powerup_duration"`

	// Percentages
	SoftBlockSpawnChance int            `json:"soft_block_spawn_chance" yaml:"soft_block_spawn_chance"`
	PowerupSpawnChance   int            `json:"powerup_spawn_chance" yaml:"powerup_spawn_chance"`
	PowerupWeights       PowerupWeights `json:"powerup_weights" yaml:"powerup_weights"`

	HumanPlayers int         `json:"human_players" yaml:"human_players"`
	BotTypes     []Archetype `json:"bot_types" yaml:"bot_types"`
	RoundsToWin  int         `json:"rounds_to_win" yaml:"rounds_to_win"`

	// Cells per tick
	BaseSpeed      float64 `json:"base_speed" yaml:"base_speed"`
	SpeedIncrement float64 `json:"speed_increment" yaml:"speed_increment"`
}

// DefaultConfig returns a sensible default game configuration.
func DefaultConfig() Config {
	return Config{
		GridRows:             13,
		GridCols:             15,
		FPS:                  30,
		BombTimer:            3 * time.Second,
		ExplosionDuration:    1 * time.Second,
		DestructionDelay:     1500 * time.Millisecond,
		Warmup:               3 * time.Second,
		RoundDuration:        180 * time.Second,
		RoundEndDelay:        1 * time.Second,
		PowerupDuration:      10 * time.Second,
		SoftBlockSpawnChance: 40,
		PowerupSpawnChance:   30,
		PowerupWeights: PowerupWeights{
			FireUp:  30,
			BombUp:  30,
			SpeedUp: 30,
			Rainbow: 5,
			Vest:    5,
		},
		HumanPlayers:   1,
		BotTypes:       []Archetype{Hostile, Careful, Greedy},
		RoundsToWin:    3,
		BaseSpeed:      0.15,
		SpeedIncrement: 0.05,
	}
}

// Ticks converts a duration to a whole number of simulation ticks.
func (c Config) Ticks(d time.Duration) int {
	return int(d * time.Duration(c.FPS) / time.Second)
}

// TickInterval is the wall-clock time between two ticks.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// PlayerCount returns how many competitors a match seats.
func (c Config) PlayerCount() int {
	humans := min(2, max(0, c.HumanPlayers))
	return min(len(SpawnPoints(c.GridRows, c.GridCols)), humans+len(c.BotTypes))
}
