package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlastCells(t *testing.T) {
	g := openGrid(7, 7)
	g[3][5].Type = HardBlock
	g[2][3].Type = SoftBlock

	cells := BlastCells(g, Point{3, 3}, 3)
	require.ElementsMatch(t, []Point{
		{3, 3},
		{2, 3},         // soft block absorbs the ray
		{4, 3}, {5, 3}, // border stops it
		{3, 2}, {3, 1},
		{3, 4}, // hard block stops it before (3,5)
	}, cells)

	// A crumbling block lets the ray through
	g[2][3].IsDestroying = true
	cells = BlastCells(g, Point{3, 3}, 3)
	require.Contains(t, cells, Point{1, 3})
}

func TestInBlastLineMatchesBlastCells(t *testing.T) {
	g := openGrid(9, 9)
	g[4][6].Type = HardBlock
	g[2][4].Type = SoftBlock
	g[4][2].Type = SoftBlock
	g[4][2].IsDestroying = true
	origin := Point{4, 4}

	for _, rng := range []int{1, 2, 3, 5} {
		cells := BlastCells(g, origin, rng)
		for r := range g {
			for c := range g[r] {
				at := Point{Row: r, Col: c}
				require.Equal(t, slices.Contains(cells, at), InBlastLine(g, at, origin, rng), "%v range %d", at, rng)
			}
		}
	}
}

func TestExplosionIsDangerousUnderEveryPolicy(t *testing.T) {
	m := playingModel(openGrid(5, 5))
	m.Grid[2][2].HasExplosion = true

	for _, policy := range []DangerPolicy{BombsOnly, ExplosionRange} {
		require.True(t, IsCellDangerous(m, Point{2, 2}, policy))
		require.False(t, IsCellDangerous(m, Point{1, 1}, policy))
		require.False(t, IsCellDangerous(m, Point{Row: 9, Col: 9}, policy))
	}
}

func TestBombDangerPolicies(t *testing.T) {
	g := openGrid(7, 7)
	g[3][5].Type = SoftBlock
	m := playingModel(g)
	m.Bombs = []Bomb{{Pos: Point{3, 3}, Range: 3}}

	require.True(t, IsCellDangerous(m, Point{3, 3}, BombsOnly))
	require.False(t, IsCellDangerous(m, Point{3, 4}, BombsOnly))

	require.True(t, IsCellDangerous(m, Point{3, 3}, ExplosionRange))
	require.True(t, IsCellDangerous(m, Point{3, 4}, ExplosionRange))
	require.True(t, IsCellDangerous(m, Point{3, 5}, ExplosionRange))
	require.False(t, IsCellDangerous(m, Point{2, 2}, ExplosionRange))
}

func TestIsInDangerUsesDiamond(t *testing.T) {
	p := testBot(1, Point{3, 3}, Careful)
	p.Tuning.DangerCheckDistance = 2
	p.Tuning.DangerDetection = BombsOnly

	m := playingModel(openGrid(9, 9), p)
	m.Bombs = []Bomb{{Pos: Point{4, 4}, Range: 1}}
	require.True(t, IsInDanger(m, p))

	// Inside the square but outside the diamond
	m.Bombs = []Bomb{{Pos: Point{5, 5}, Range: 1}}
	require.False(t, IsInDanger(m, p))

	// Radius zero only looks at the player's own cell
	p.Tuning.DangerCheckDistance = 0
	m.Bombs = []Bomb{{Pos: Point{3, 4}, Range: 1}}
	require.False(t, IsInDanger(m, p))
	m.Bombs = []Bomb{{Pos: Point{3, 3}, Range: 1}}
	require.True(t, IsInDanger(m, p))
}
