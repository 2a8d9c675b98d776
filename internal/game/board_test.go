package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SoftBlockSpawnChance = 100
	g := NewGrid(cfg, rand.New(rand.NewPCG(1, 1)))

	require.Equal(t, cfg.GridRows, g.Rows())
	require.Equal(t, cfg.GridCols, g.Cols())

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := g[r][c]
			border := r == 0 || c == 0 || r == g.Rows()-1 || c == g.Cols()-1
			switch {
			case border:
				require.Equal(t, HardBlock, cell.Type, "border (%d,%d)", r, c)
			case r%2 == 0 && c%2 == 0:
				require.Equal(t, HardBlock, cell.Type, "pillar (%d,%d)", r, c)
			case inSafeZone(r, c, g.Rows(), g.Cols()):
				require.Equal(t, Empty, cell.Type, "safe zone (%d,%d)", r, c)
			default:
				require.Equal(t, SoftBlock, cell.Type, "interior (%d,%d)", r, c)
			}
			require.False(t, cell.HasExplosion)
			require.False(t, cell.IsDestroying)
		}
	}
}

func TestNewGridWithoutSoftBlocks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SoftBlockSpawnChance = 0
	g := NewGrid(cfg, rand.New(rand.NewPCG(1, 1)))

	for r := range g {
		for c := range g[r] {
			require.NotEqual(t, SoftBlock, g[r][c].Type)
		}
	}
}

func TestSpawnPointsAreClear(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SoftBlockSpawnChance = 100
	g := NewGrid(cfg, rand.New(rand.NewPCG(3, 4)))

	spawns := SpawnPoints(cfg.GridRows, cfg.GridCols)
	require.Len(t, spawns, 4)
	for _, sp := range spawns {
		require.Equal(t, Empty, g.At(sp).Type)
		// Each corner leaves room to step out and dodge a first bomb
		var open int
		for _, d := range cardinal {
			if g.At(sp.add(d, 1)).Type == Empty {
				open++
			}
		}
		require.Equal(t, 2, open, "spawn %v", sp)
	}
}
