package game

// BlastCells ray-casts a detonation at origin: the origin itself plus up to
// rng cells in each cardinal direction. A hard block stops the ray before
// its cell; an intact soft block is included and stops the ray after it.
func BlastCells(g Grid, origin Point, rng int) []Point {
	cells := []Point{origin}
	for _, d := range cardinal {
		for k := 1; k <= rng; k++ {
			p := origin.add(d, k)
			if !g.InBounds(p) {
				break
			}
			cell := g.At(p)
			if cell.Type == HardBlock {
				break
			}
			cells = append(cells, p)
			if cell.intactSoft() {
				break
			}
		}
	}
	return cells
}

// InBlastLine reports whether target would be hit by a bomb of the given
// range at origin, with the same line-of-sight rules as BlastCells.
func InBlastLine(g Grid, target, origin Point, rng int) bool {
	if target == origin {
		return true
	}
	var d Point
	var dist int
	switch {
	case target.Row == origin.Row:
		dist = abs(target.Col - origin.Col)
		d = Point{Col: sign(target.Col - origin.Col)}
	case target.Col == origin.Col:
		dist = abs(target.Row - origin.Row)
		d = Point{Row: sign(target.Row - origin.Row)}
	default:
		return false
	}
	if dist > rng {
		return false
	}
	for k := 1; k <= dist; k++ {
		p := origin.add(d, k)
		if !g.InBounds(p) || g.At(p).Type == HardBlock {
			return false
		}
		if g.At(p).intactSoft() {
			return k == dist
		}
	}
	return true
}

// IsCellDangerous reports whether p is lethal now or soon for a bot using
// the given detection policy. A live explosion is dangerous under every
// policy.
func IsCellDangerous(m Model, p Point, policy DangerPolicy) bool {
	if !m.Grid.InBounds(p) {
		return false
	}
	if m.Grid.At(p).HasExplosion {
		return true
	}
	switch policy {
	case BombsOnly:
		return m.BombAt(p)
	default:
		for _, b := range m.Bombs {
			if InBlastLine(m.Grid, p, b.Pos, b.Range) {
				return true
			}
		}
		return false
	}
}

// IsInDanger reports whether any cell within the player's danger-check
// distance (a Manhattan diamond around their cell) is dangerous.
func IsInDanger(m Model, p Player) bool {
	at := p.Cell()
	if m.Grid.InBounds(at) && m.Grid.At(at).HasExplosion {
		return true
	}
	radius := p.Tuning.DangerCheckDistance
	for dr := -radius; dr <= radius; dr++ {
		span := radius - abs(dr)
		for dc := -span; dc <= span; dc++ {
			if IsCellDangerous(m, Point{Row: at.Row + dr, Col: at.Col + dc}, p.Tuning.DangerDetection) {
				return true
			}
		}
	}
	return false
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
