package game

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SoftBlockSpawnChance = 0
	cfg.PowerupSpawnChance = 0
	return cfg
}

func newTestEngine(t *testing.T, cfg Config, log logrus.FieldLogger) *Engine {
	t.Helper()
	return NewEngine(cfg, rand.New(rand.NewPCG(7, 11)), log)
}

// openGrid returns a board with a hard border and nothing else.
func openGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]Cell, cols)
		for c := range g[r] {
			if r == 0 || c == 0 || r == rows-1 || c == cols-1 {
				g[r][c].Type = HardBlock
			}
		}
	}
	return g
}

func playingModel(g Grid, players ...Player) Model {
	return Model{
		Grid:          g,
		Players:       players,
		State:         StatePlaying,
		RoundTimer:    100000,
		RoundNumber:   1,
		RoundsToWin:   3,
		RoundEndTimer: -1,
	}
}

func testHuman(id int, at Point) Player {
	return Player{
		ID:        id,
		Label:     fmt.Sprintf("P%d", id),
		Pos:       at.Position(),
		StartPos:  at.Position(),
		Alive:     true,
		Human:     true,
		Speed:     0.15,
		BombRange: 1,
		MaxBombs:  1,
		BotGoal:   NoGoal,
	}
}

func testBot(id int, at Point, a Archetype) Player {
	p := testHuman(id, at)
	p.Human = false
	p.BotType = a
	p.Tuning, _ = LookupArchetype(a)
	p.BotState = BotWander
	return p
}

// bombCounts tallies live bombs per owner.
func bombCounts(m Model) map[int]int {
	out := make(map[int]int)
	for _, b := range m.Bombs {
		out[b.PlayerID]++
	}
	return out
}
