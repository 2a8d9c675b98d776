// Package config loads match settings from a YAML file.
//
// Every field of game.Config may be set; omitted fields keep their
// defaults. Durations are written as Go duration strings ("3s", "250ms").
//
//	grid_rows: 13
//	grid_cols: 15
//	bomb_timer: 3s
//	human_players: 1
//	bot_types: [hostile, careful, greedy]
//	powerup_weights:
//	  fire_up: 30
//	  vest: 5
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amalg/bomber-arena/internal/game"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Load reads the settings file at path over game.DefaultConfig. An empty
// path returns the defaults.
func Load(path string) (game.Config, error) {
	cfg := game.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err = Decode(f)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML settings from r over the defaults and validates the
// result. Unknown keys are rejected.
func Decode(r io.Reader) (game.Config, error) {
	cfg := game.DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, Validate(cfg)
}

// Validate checks that a configuration can seat and run a match.
func Validate(cfg game.Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(cfg.GridRows >= 5 && cfg.GridRows%2 == 1, "grid_rows must be odd and at least 5, got %d", cfg.GridRows)
	check(cfg.GridCols >= 5 && cfg.GridCols%2 == 1, "grid_cols must be odd and at least 5, got %d", cfg.GridCols)
	check(cfg.FPS > 0, "fps must be positive, got %d", cfg.FPS)
	check(cfg.BombTimer > 0, "bomb_timer must be positive")
	check(cfg.ExplosionDuration > 0, "explosion_duration must be positive")
	check(cfg.DestructionDelay >= 0, "destruction_delay must not be negative")
	check(cfg.Warmup >= 0, "warmup must not be negative")
	check(cfg.RoundDuration > 0, "round_duration must be positive")
	check(cfg.RoundEndDelay >= 0, "round_end_delay must not be negative")
	check(cfg.PowerupDuration > 0, "powerup_duration must be positive")
	check(percent(cfg.SoftBlockSpawnChance), "soft_block_spawn_chance must be 0-100, got %d", cfg.SoftBlockSpawnChance)
	check(percent(cfg.PowerupSpawnChance), "powerup_spawn_chance must be 0-100, got %d", cfg.PowerupSpawnChance)

	w := cfg.PowerupWeights
	check(w.FireUp >= 0 && w.BombUp >= 0 && w.SpeedUp >= 0 && w.Rainbow >= 0 && w.Vest >= 0, "powerup weights must not be negative")
	check(cfg.PowerupSpawnChance == 0 || w.FireUp+w.BombUp+w.SpeedUp+w.Rainbow+w.Vest > 0, "powerup weights are all zero")

	check(cfg.HumanPlayers >= 0 && cfg.HumanPlayers <= 2, "human_players must be 0-2, got %d", cfg.HumanPlayers)
	for _, a := range cfg.BotTypes {
		_, ok := game.LookupArchetype(a)
		check(ok, "unknown bot type %q (known: %v)", a, game.Archetypes())
	}
	check(cfg.PlayerCount() >= 2, "a match needs at least 2 players, got %d", cfg.PlayerCount())
	check(cfg.RoundsToWin > 0, "rounds_to_win must be positive, got %d", cfg.RoundsToWin)
	check(cfg.BaseSpeed > 0 && cfg.BaseSpeed < 1, "base_speed must be in (0, 1), got %v", cfg.BaseSpeed)
	check(cfg.SpeedIncrement >= 0, "speed_increment must not be negative")

	return errors.Join(errs...)
}

func percent(n int) bool {
	return n >= 0 && n <= 100
}
