package game

import (
	bt "github.com/joeycumines/go-behaviortree"
	"github.com/sirupsen/logrus"
)

const (
	// plantAlertRadius is how close a freshly planted bomb must be to force
	// a bot to plan again.
	plantAlertRadius = 5
	// powerupNearby bounds the random powerup pick.
	powerupNearby = 4
	// wanderAttempts bounds random goal sampling.
	wanderAttempts = 50
)

// updateBots runs every living bot's controller for this tick: plan when a
// trigger fires, re-validate the current plan, then maybe plant a bomb.
// Bots run in seat order and each one sees the bombs planted before it.
func (e *Engine) updateBots(m *Model) {
	expiring := e.explosionExpiring(*m)
	for i := range m.Players {
		p := m.Players[i]
		if !p.Alive || !p.IsBot() {
			continue
		}

		if p.BotState == BotIdle || expiring || e.periodicTrigger(*m, p) || plantedNearby(*m, p) {
			p = e.reevaluate(*m, p)
		}
		p = e.executeBotState(*m, p)
		m.Players[i] = p

		if shouldPlantBomb(*m, p) && m.plantBomb(i) {
			// Plan against the new bomb right away so the bot flees it
			m.Players[i] = e.reevaluate(*m, m.Players[i])
		}
	}
}

// explosionExpiring reports whether any explosion is in its last tick.
func (e *Engine) explosionExpiring(m Model) bool {
	lifetime := e.cfg.Ticks(e.cfg.ExplosionDuration)
	for _, x := range m.Explosions {
		if m.CurrentTime-x.CreatedAt >= lifetime-1 {
			return true
		}
	}
	return false
}

// periodicTrigger fires once the reevaluation interval has elapsed and a
// draw against the archetype's reevaluation chance succeeds. It never fires
// while escaping.
func (e *Engine) periodicTrigger(m Model, p Player) bool {
	if p.BotState == BotEscape {
		return false
	}
	if m.CurrentTime-p.LastReevaluation < e.cfg.Ticks(p.Tuning.ReevaluationInterval) {
		return false
	}
	return e.rng.Float64() < p.Tuning.ReevaluationChance
}

// plantedNearby reports whether a bomb went down within plantAlertRadius of
// p since the previous tick.
func plantedNearby(m Model, p Player) bool {
	at := p.Cell()
	for _, b := range m.Bombs {
		if m.CurrentTime-b.PlantedAt <= 1 && at.Manhattan(b.Pos) <= plantAlertRadius {
			return true
		}
	}
	return false
}

// planner holds one reevaluation's inputs and result while the decision
// tree runs.
type planner struct {
	e *Engine
	m Model
	p Player
}

func (pl *planner) set(state BotState, goal Point, path []Point) {
	pl.p.BotState = state
	pl.p.BotGoal = goal
	pl.p.BotPath = path
}

// reevaluate recomputes a bot's state, goal and path. The first branch that
// applies wins: escape danger, fetch a powerup, attack, wander.
func (e *Engine) reevaluate(m Model, p Player) Player {
	pl := &planner{e: e, m: m, p: p}
	tree := bt.New(
		bt.Selector,
		bt.New(pl.escape),
		bt.New(pl.seekPowerup),
		bt.New(pl.attack),
		bt.New(pl.wander),
	)
	if status, err := tree.Tick(); err != nil || status != bt.Success {
		e.log.WithError(err).WithField("player", p.Label).Warn("bot plan did not settle")
	}

	pl.p.LastReevaluation = m.CurrentTime
	e.log.WithFields(logrus.Fields{
		"player": pl.p.Label,
		"state":  pl.p.BotState.String(),
		"goal":   pl.p.BotGoal,
		"steps":  len(pl.p.BotPath),
	}).Trace("bot reevaluated")
	return pl.p
}

// escape flees to the nearest safe cell. Without a usable escape route the
// bot wanders to a random cell, through soft blocks if it must.
func (pl *planner) escape([]bt.Node) (bt.Status, error) {
	if !IsInDanger(pl.m, pl.p) {
		return bt.Failure, nil
	}

	start := pl.p.Cell()
	goal, ok := findSafeGoal(pl.m, pl.p)
	var path []Point
	if ok {
		path = ShortestPath(pl.m, start, goal, PathOptions{Avoid: dangerFor(pl.m, pl.p)})
		if len(path) == 0 {
			// Crossing a cell that is only threatened beats standing still
			path = ShortestPath(pl.m, start, goal, PathOptions{Avoid: burning(pl.m)})
		}
	}
	if !ok || (len(path) == 0 && start.Manhattan(goal) > 1) {
		goal = pl.e.randomGoal(pl.m)
		pl.set(BotWander, goal, ShortestPath(pl.m, start, goal, PathOptions{IgnoreSoft: true}))
		return bt.Success, nil
	}

	pl.set(BotEscape, goal, path)
	return bt.Success, nil
}

// seekPowerup goes after a reachable powerup, if the archetype's powerup
// chance allows it this time.
func (pl *planner) seekPowerup([]bt.Node) (bt.Status, error) {
	if pl.e.rng.Float64() > pl.p.Tuning.PowerupPolicyChance {
		return bt.Failure, nil
	}

	start := pl.p.Cell()
	reach := Reachable(pl.m, start, false)
	var candidates []Point
	for r := range pl.m.Grid {
		for c := range pl.m.Grid[r] {
			at := Point{Row: r, Col: c}
			if pl.m.Grid[r][c].VisiblePowerup() && reach.Has(at) {
				candidates = append(candidates, at)
			}
		}
	}

	var goal Point
	switch pl.p.Tuning.PowerupPolicy {
	case PolicyFirst:
		if len(candidates) == 0 {
			return bt.Failure, nil
		}
		goal = nearest(start, candidates)
	default:
		var near []Point
		for _, c := range candidates {
			if start.Manhattan(c) <= powerupNearby {
				near = append(near, c)
			}
		}
		if len(near) == 0 {
			return bt.Failure, nil
		}
		goal = near[pl.e.rng.IntN(len(near))]
	}

	pl.set(BotGetPowerup, goal, ShortestPath(pl.m, start, goal, PathOptions{}))
	return bt.Success, nil
}

// attack targets a living opponent within the archetype's target distance.
// PolicyFirst picks the nearest one reachable around soft blocks;
// PolicySecond picks any at random and paths through soft blocks. An
// opponent sharing the bot's cell is not a target.
func (pl *planner) attack([]bt.Node) (bt.Status, error) {
	start := pl.p.Cell()
	ignoreSoft := pl.p.Tuning.AttackPolicy == PolicySecond
	reach := Reachable(pl.m, start, ignoreSoft)

	var targets []Point
	for _, enemy := range pl.m.Players {
		if enemy.ID == pl.p.ID || !enemy.Alive {
			continue
		}
		at := enemy.Cell()
		if at == start {
			continue
		}
		if start.Manhattan(at) <= pl.p.Tuning.AttackTargetDistance && reach.Has(at) {
			targets = append(targets, at)
		}
	}
	if len(targets) == 0 {
		return bt.Failure, nil
	}

	var goal Point
	if pl.p.Tuning.AttackPolicy == PolicyFirst {
		goal = nearest(start, targets)
	} else {
		goal = targets[pl.e.rng.IntN(len(targets))]
	}

	pl.set(BotAttack, goal, ShortestPath(pl.m, start, goal, PathOptions{IgnoreSoft: ignoreSoft}))
	return bt.Success, nil
}

// wander heads for a random open cell, planning straight through soft
// blocks so that wandering also clears the board.
func (pl *planner) wander([]bt.Node) (bt.Status, error) {
	goal := pl.e.randomGoal(pl.m)
	pl.set(BotWander, goal, ShortestPath(pl.m, pl.p.Cell(), goal, PathOptions{IgnoreSoft: true}))
	return bt.Success, nil
}

// executeBotState keeps the current plan unless it has gone stale, in which
// case the bot plans again.
func (e *Engine) executeBotState(m Model, p Player) Player {
	validGoal := m.Grid.InBounds(p.BotGoal)
	stale := !validGoal || len(p.BotPath) == 0

	switch p.BotState {
	case BotWander:
		stale = stale || p.Cell() == p.BotGoal
	case BotEscape:
		stale = stale || !IsInDanger(m, p)
	case BotGetPowerup:
		stale = stale || !m.Grid.At(p.BotGoal).VisiblePowerup()
	case BotAttack:
	default:
		stale = true
	}

	if stale {
		return e.reevaluate(m, p)
	}
	return p
}

// shouldPlantBomb decides whether a bot drops a bomb where it stands: when
// attacking with an opponent in planting range, or when the next step of its
// path is a soft block in the way.
func shouldPlantBomb(m Model, p Player) bool {
	at := p.Cell()
	if p.BotState == BotAttack {
		for _, enemy := range m.Players {
			if enemy.ID != p.ID && enemy.Alive && at.Manhattan(enemy.Cell()) <= p.Tuning.AttackPlantDistance {
				return true
			}
		}
	}

	if len(p.BotPath) > 0 {
		next := p.BotPath[0]
		if m.Grid.InBounds(next) && m.Grid.At(next).intactSoft() && !m.BombAt(at) {
			return true
		}
	}
	return false
}

// findSafeGoal returns the closest cell, in steps, that the player can reach
// around soft blocks and that is not dangerous by its own policy.
func findSafeGoal(m Model, p Player) (Point, bool) {
	for _, at := range floodOrder(m, p.Cell(), PathOptions{}) {
		if !IsCellDangerous(m, at, p.Tuning.DangerDetection) {
			return at, true
		}
	}
	return NoGoal, false
}

// randomGoal samples a random non-hard cell, giving up after a bounded
// number of draws.
func (e *Engine) randomGoal(m Model) Point {
	for range wanderAttempts {
		at := Point{Row: e.rng.IntN(m.Grid.Rows()), Col: e.rng.IntN(m.Grid.Cols())}
		if m.Grid.At(at).Type != HardBlock {
			return at
		}
	}
	return NoGoal
}

func dangerFor(m Model, p Player) func(Point) bool {
	return func(at Point) bool {
		return IsCellDangerous(m, at, p.Tuning.DangerDetection)
	}
}

func burning(m Model) func(Point) bool {
	return func(at Point) bool {
		return m.Grid.At(at).HasExplosion
	}
}

// nearest returns the candidate closest to from; ties go to the earliest.
func nearest(from Point, candidates []Point) Point {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if from.Manhattan(c) < from.Manhattan(best) {
			best = c
		}
	}
	return best
}
