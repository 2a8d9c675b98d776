package game

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Inset of the lethal hitbox used by checkDeaths, in cells from the
// player's top-left corner.
const (
	deathInsetNear = 0.2
	deathInsetFar  = 0.8
)

// newPlayers seats humans first, then bots, one per corner spawn.
func (e *Engine) newPlayers() []Player {
	spawns := SpawnPoints(e.cfg.GridRows, e.cfg.GridCols)
	humans := min(2, max(0, e.cfg.HumanPlayers))

	players := make([]Player, 0, e.cfg.PlayerCount())
	for seat := 0; seat < e.cfg.PlayerCount(); seat++ {
		p := Player{
			ID:      seat + 1,
			Label:   fmt.Sprintf("P%d", seat+1),
			Color:   seat,
			Human:   seat < humans,
			BotGoal: NoGoal,
		}
		if !p.Human {
			p.BotType = e.cfg.BotTypes[seat-humans]
			p.Tuning, _ = LookupArchetype(p.BotType)
		}
		p.StartPos = spawns[seat].Position()
		players = append(players, e.resetPlayer(p))
	}
	return players
}

// resetPlayer returns p at its spawn with round-scoped state cleared. Wins
// and identity survive.
func (e *Engine) resetPlayer(p Player) Player {
	p.Pos = p.StartPos
	p.Alive = true
	p.Direction = DirDown
	p.Moving = false
	p.Speed = e.cfg.BaseSpeed
	p.BombRange = 1
	p.MaxBombs = 1
	p.ActiveBombs = 0
	p.HasVest = false
	p.VestTimer = 0
	p.RainbowTimer = 0

	p.BotState = BotIdle
	if p.IsBot() {
		p.BotState = BotWander
	}
	p.BotGoal = NoGoal
	p.BotPath = nil
	p.LastReevaluation = 0
	p.AIDirection = DirNone
	return p
}

// NewModel builds a fresh match: new board, new match id, zero wins, round
// one in warmup.
func (e *Engine) NewModel() Model {
	m := Model{
		MatchID:     uuid.New(),
		Players:     e.newPlayers(),
		RoundsToWin: e.cfg.RoundsToWin,
	}
	m = e.beginRound(m, 1)
	e.log.WithFields(logrus.Fields{
		"match":   m.MatchID.String(),
		"players": len(m.Players),
	}).Info("match started")
	return m
}

// beginRound lays a new board under the existing players.
func (e *Engine) beginRound(m Model, round int) Model {
	m.Grid = NewGrid(e.cfg, e.rng)
	for i := range m.Players {
		m.Players[i] = e.resetPlayer(m.Players[i])
	}
	m.Bombs = nil
	m.Explosions = nil
	m.Keys = KeySet{}
	m.CurrentTime = 0
	m.State = StateWarmup
	m.RoundTimer = e.cfg.Ticks(e.cfg.Warmup)
	m.RoundNumber = round
	m.RoundWinner = ""
	m.RoundEndTimer = -1
	m.Debug = false
	return m
}

// startNextRound keeps the match going. Outside of roundOver it does
// nothing.
func (e *Engine) startNextRound(m Model) Model {
	if m.State != StateRoundOver {
		return m
	}
	m = e.beginRound(m, m.RoundNumber+1)
	e.log.WithField("round", m.RoundNumber).Info("round started")
	return m
}

// checkDeaths kills every living player whose inner hitbox touches a burning
// cell. A vest absorbs the hit and is used up.
func (e *Engine) checkDeaths(m *Model) {
	for i := range m.Players {
		p := &m.Players[i]
		if !p.Alive || !touchesFire(m.Grid, p.Pos) {
			continue
		}
		if p.HasVest {
			p.HasVest = false
			p.VestTimer = 0
			e.log.WithField("player", p.Label).Debug("vest absorbed blast")
			continue
		}
		p.Alive = false
		p.Moving = false
		p.BotPath = nil
		e.log.WithFields(logrus.Fields{
			"player": p.Label,
			"time":   m.CurrentTime,
		}).Debug("player died")
	}
}

func touchesFire(g Grid, pos Position) bool {
	for _, off := range [4][2]float64{
		{deathInsetNear, deathInsetNear},
		{deathInsetNear, deathInsetFar},
		{deathInsetFar, deathInsetNear},
		{deathInsetFar, deathInsetFar},
	} {
		at := Point{
			Row: int(math.Floor(pos.Row + off[0])),
			Col: int(math.Floor(pos.Col + off[1])),
		}
		if g.InBounds(at) && g.At(at).HasExplosion {
			return true
		}
	}
	return false
}

// checkRoundEnd starts the end-of-round countdown once at most one player
// is left standing, and settles the round when it runs out. A single-player
// match never ends this way.
func (e *Engine) checkRoundEnd(m *Model) {
	alive := m.AliveCount()
	if alive > 1 || len(m.Players) < 2 {
		m.RoundEndTimer = -1
		return
	}

	if m.RoundEndTimer < 0 {
		m.RoundEndTimer = e.cfg.Ticks(e.cfg.RoundEndDelay)
	}
	if m.RoundEndTimer > 0 {
		m.RoundEndTimer--
		return
	}

	winner := DrawLabel
	for _, p := range m.Players {
		if p.Alive {
			winner = p.Label
		}
	}
	e.endRound(m, winner)
}

// endRound records the winner and moves to roundOver or matchOver.
func (e *Engine) endRound(m *Model, winner string) {
	m.RoundWinner = winner
	m.RoundEndTimer = -1
	m.State = StateRoundOver
	for i := range m.Players {
		p := &m.Players[i]
		if p.Label != winner {
			continue
		}
		p.Wins++
		if p.Wins >= m.RoundsToWin {
			m.State = StateMatchOver
		}
	}

	log := e.log.WithFields(logrus.Fields{
		"match":  m.MatchID.String(),
		"round":  m.RoundNumber,
		"winner": winner,
	})
	log.Info("round over")
	if m.State == StateMatchOver {
		log.Info("match over")
	}
}
