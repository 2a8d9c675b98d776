package game

import (
	"math/rand/v2"
)

// NewGrid generates a classic Bomberman grid layout.
//
// Layout rules:
//   - Border is all HardBlock
//   - HardBlock at every interior position where both row and col are even
//   - Each corner's 3x3 spawn zone is kept clear
//   - Remaining interior cells become SoftBlock with the configured chance
func NewGrid(config Config, rng *rand.Rand) Grid {
	grid := make(Grid, config.GridRows)
	for r := 0; r < config.GridRows; r++ {
		grid[r] = make([]Cell, config.GridCols)
		for c := 0; c < config.GridCols; c++ {
			switch {
			case r == 0 || c == 0 || r == config.GridRows-1 || c == config.GridCols-1:
				grid[r][c].Type = HardBlock
			case r%2 == 0 && c%2 == 0:
				grid[r][c].Type = HardBlock
			}
		}
	}

	for r := 1; r < config.GridRows-1; r++ {
		for c := 1; c < config.GridCols-1; c++ {
			if grid[r][c].Type != Empty || inSafeZone(r, c, config.GridRows, config.GridCols) {
				continue
			}
			if rng.IntN(100) < config.SoftBlockSpawnChance {
				grid[r][c].Type = SoftBlock
			}
		}
	}

	return grid
}

// inSafeZone reports whether (r, c) falls in one of the 3x3 corner squares
// (border included) that must stay clear for spawning.
func inSafeZone(r, c, rows, cols int) bool {
	top, bottom := r <= 2, r >= rows-3
	left, right := c <= 2, c >= cols-3
	return (top || bottom) && (left || right)
}

// SpawnPoints returns the corner spawn cells in seating order.
func SpawnPoints(rows, cols int) []Point {
	return []Point{
		{Row: 1, Col: 1},               // Top-left
		{Row: 1, Col: cols - 2},        // Top-right
		{Row: rows - 2, Col: 1},        // Bottom-left
		{Row: rows - 2, Col: cols - 2}, // Bottom-right
	}
}
