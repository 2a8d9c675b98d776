package game

import (
	"github.com/zyedidia/generic/mapset"
)

// plantBomb places a bomb at the player's current cell. It is a no-op when
// the player is dead, already at their bomb limit, or a bomb occupies the
// cell.
func (m *Model) plantBomb(i int) bool {
	p := &m.Players[i]
	if !p.Alive || p.ActiveBombs >= p.MaxBombs {
		return false
	}

	pos := p.Cell()
	if m.BombAt(pos) {
		return false
	}

	m.Bombs = append(m.Bombs, Bomb{
		Pos:       pos,
		PlantedAt: m.CurrentTime,
		Range:     p.BombRange,
		PlayerID:  p.ID,
	})
	p.ActiveBombs++
	return true
}

// advanceRubble counts down crumbling soft blocks. A block whose timer
// reaches zero becomes plain empty floor.
func (m *Model) advanceRubble() {
	for r := range m.Grid {
		for c := range m.Grid[r] {
			cell := &m.Grid[r][c]
			if !cell.IsDestroying || cell.DestroyTimer <= 0 {
				continue
			}
			cell.DestroyTimer--
			if cell.DestroyTimer == 0 {
				cell.Type = Empty
				cell.IsDestroying = false
			}
		}
	}
}

// advanceBombs detonates every bomb whose fuse ran out or that sits in a
// blast, expires old explosions, and recomputes which cells burn this tick.
//
// Detonation is resolved to a fixpoint: a bomb caught by a blast created in
// this tick goes off in the same tick. All rays are cast against the grid as
// it was before this tick's destruction.
func (e *Engine) advanceBombs(m *Model) {
	fuse := e.cfg.Ticks(e.cfg.BombTimer)
	lifetime := e.cfg.Ticks(e.cfg.ExplosionDuration)

	active := make([]Explosion, 0, len(m.Explosions))
	for _, x := range m.Explosions {
		if m.CurrentTime-x.CreatedAt < lifetime {
			active = append(active, x)
		}
	}

	detonated := make([]bool, len(m.Bombs))
	var queue []int
	for i, b := range m.Bombs {
		if m.CurrentTime-b.PlantedAt >= fuse || m.Grid.At(b.Pos).HasExplosion {
			detonated[i] = true
			queue = append(queue, i)
		}
	}

	var fresh []Explosion
	for head := 0; head < len(queue); head++ {
		b := m.Bombs[queue[head]]
		cells := BlastCells(m.Grid, b.Pos, b.Range)
		fresh = append(fresh, Explosion{Cells: cells, CreatedAt: m.CurrentTime})

		// Chain reaction: a blast reaching another bomb detonates it now
		for _, c := range cells {
			for j, other := range m.Bombs {
				if !detonated[j] && other.Pos == c {
					detonated[j] = true
					queue = append(queue, j)
				}
			}
		}
	}

	m.Explosions = append(active, fresh...)
	e.burnCells(m)

	if len(queue) == 0 {
		return
	}

	// Remove detonated bombs and return bomb count to owners
	returned := make(map[int]int, len(queue))
	remaining := make([]Bomb, 0, len(m.Bombs)-len(queue))
	for i, b := range m.Bombs {
		if detonated[i] {
			returned[b.PlayerID]++
			continue
		}
		remaining = append(remaining, b)
	}
	m.Bombs = remaining
	for i := range m.Players {
		if n := returned[m.Players[i].ID]; n > 0 {
			m.Players[i].ActiveBombs = max(0, m.Players[i].ActiveBombs-n)
		}
	}

	e.log.WithField("bombs", len(queue)).Trace("detonation")
}

// burnCells marks the union of all live explosions on the grid. The flag is
// rebuilt from scratch every tick. Intact soft blocks inside the union start
// crumbling and may seed a powerup. A loose powerup is destroyed only by a
// blast created this tick, so a pickup revealed under lingering fire stays.
func (e *Engine) burnCells(m *Model) {
	burning := mapset.New[Point]()
	fresh := mapset.New[Point]()
	for _, x := range m.Explosions {
		for _, c := range x.Cells {
			burning.Put(c)
			if x.CreatedAt == m.CurrentTime {
				fresh.Put(c)
			}
		}
	}

	delay := e.cfg.Ticks(e.cfg.DestructionDelay)
	for r := range m.Grid {
		for c := range m.Grid[r] {
			cell := &m.Grid[r][c]
			cell.HasExplosion = burning.Has(Point{Row: r, Col: c})
			if !cell.HasExplosion {
				continue
			}
			switch {
			case cell.intactSoft():
				cell.Powerup = e.rollPowerup()
				if delay <= 0 {
					cell.Type = Empty
					continue
				}
				cell.IsDestroying = true
				cell.DestroyTimer = delay
			case cell.VisiblePowerup() && fresh.Has(Point{Row: r, Col: c}):
				cell.Powerup = NoPowerup
			}
		}
	}
}
