package game

import (
	"github.com/sirupsen/logrus"
)

// rainbowBoost is how much a Rainbow pickup adds to range, bombs and speed
// steps while it lasts.
const rainbowBoost = 3

// rollPowerup decides what a destroyed soft block leaves behind.
func (e *Engine) rollPowerup() Powerup {
	if e.rng.IntN(100) >= e.cfg.PowerupSpawnChance {
		return NoPowerup
	}
	w := e.cfg.PowerupWeights
	total := w.total()
	if total <= 0 {
		return NoPowerup
	}

	n := e.rng.IntN(total)
	for _, kind := range []struct {
		p      Powerup
		weight int
	}{
		{FireUp, w.FireUp},
		{BombUp, w.BombUp},
		{SpeedUp, w.SpeedUp},
		{Rainbow, w.Rainbow},
		{Vest, w.Vest},
	} {
		if n < kind.weight {
			return kind.p
		}
		n -= kind.weight
	}
	return NoPowerup
}

// advancePlayerTimers counts down vest and rainbow effects. When a rainbow
// runs out, its bundle is taken back, never below the base stats.
func (e *Engine) advancePlayerTimers(m *Model) {
	for i := range m.Players {
		p := &m.Players[i]
		if p.HasVest {
			p.VestTimer = max(0, p.VestTimer-1)
			p.HasVest = p.VestTimer > 0
		}
		if p.RainbowTimer > 0 {
			p.RainbowTimer--
			if p.RainbowTimer == 0 {
				p.BombRange = max(1, p.BombRange-rainbowBoost)
				p.MaxBombs = max(1, p.MaxBombs-rainbowBoost)
				p.Speed = max(e.cfg.BaseSpeed, p.Speed-e.cfg.SpeedIncrement*rainbowBoost)
			}
		}
	}
}

// collectPowerups hands every visible powerup under a living player to that
// player and clears it from the board.
func (e *Engine) collectPowerups(m *Model) {
	for i := range m.Players {
		p := &m.Players[i]
		if !p.Alive {
			continue
		}
		at := p.Cell()
		if !m.Grid.InBounds(at) {
			continue
		}
		cell := &m.Grid[at.Row][at.Col]
		if !cell.VisiblePowerup() {
			continue
		}

		e.applyPowerup(p, cell.Powerup)
		e.log.WithFields(logrus.Fields{
			"player":  p.Label,
			"powerup": cell.Powerup.String(),
		}).Debug("powerup collected")
		cell.Powerup = NoPowerup
	}
}

func (e *Engine) applyPowerup(p *Player, kind Powerup) {
	duration := e.cfg.Ticks(e.cfg.PowerupDuration)
	switch kind {
	case FireUp:
		p.BombRange++
	case BombUp:
		p.MaxBombs++
	case SpeedUp:
		p.Speed += e.cfg.SpeedIncrement
	case Rainbow:
		// A second rainbow only refreshes the timer
		if p.RainbowTimer == 0 {
			p.BombRange += rainbowBoost
			p.MaxBombs += rainbowBoost
			p.Speed += e.cfg.SpeedIncrement * rainbowBoost
		}
		p.RainbowTimer = duration
	case Vest:
		p.HasVest = true
		p.VestTimer = duration
	}
}
