package game

import (
	"math"
)

const (
	// hitboxSize is the side of a player's collision box, in cells.
	hitboxSize  = 0.6
	hitboxInset = (1 - hitboxSize) / 2

	// alignEpsilon is how far off the lane centre a bot may drift before it
	// corrects on the cross axis.
	alignEpsilon = 0.05
)

// box is an axis-aligned rectangle in cell units.
type box struct {
	left, top, right, bottom float64
}

func hitbox(row, col float64) box {
	return box{
		left:   col + hitboxInset,
		top:    row + hitboxInset,
		right:  col + hitboxInset + hitboxSize,
		bottom: row + hitboxInset + hitboxSize,
	}
}

func (b box) overlaps(o box) bool {
	return !(b.right <= o.left || b.left >= o.right || b.bottom <= o.top || b.top >= o.bottom)
}

// CanMoveTo reports whether player p may occupy (row, col). All four
// corners of the destination hitbox must be on open floor, and the box may
// not overlap a bomb unless p already overlaps that bomb where it stands.
func CanMoveTo(m Model, p Player, row, col float64) bool {
	dest := hitbox(row, col)
	for _, corner := range [4][2]float64{
		{dest.top, dest.left},
		{dest.top, dest.right},
		{dest.bottom, dest.left},
		{dest.bottom, dest.right},
	} {
		at := Point{Row: int(math.Floor(corner[0])), Col: int(math.Floor(corner[1]))}
		if !m.Grid.InBounds(at) || m.Grid.At(at).Solid() {
			return false
		}
	}

	cur := hitbox(p.Pos.Row, p.Pos.Col)
	for _, b := range m.Bombs {
		footprint := box{
			left:   float64(b.Pos.Col),
			top:    float64(b.Pos.Row),
			right:  float64(b.Pos.Col + 1),
			bottom: float64(b.Pos.Row + 1),
		}
		if dest.overlaps(footprint) && !cur.overlaps(footprint) {
			return false
		}
	}
	return true
}

// moveHuman applies the held direction keys. Opposing keys cancel; when the
// combined move is blocked the player slides along whichever single axis is
// free, row first.
func moveHuman(m Model, p Player) Player {
	keys := ControlsFor(p.ID)
	var dRow, dCol float64
	p.Moving = false
	if m.Keys.Has(keys.Up) {
		dRow -= p.Speed
		p.Direction, p.Moving = DirUp, true
	}
	if m.Keys.Has(keys.Down) {
		dRow += p.Speed
		p.Direction, p.Moving = DirDown, true
	}
	if m.Keys.Has(keys.Left) {
		dCol -= p.Speed
		p.Direction, p.Moving = DirLeft, true
	}
	if m.Keys.Has(keys.Right) {
		dCol += p.Speed
		p.Direction, p.Moving = DirRight, true
	}

	row, col := p.Pos.Row, p.Pos.Col
	switch {
	case CanMoveTo(m, p, row+dRow, col+dCol):
		p.Pos = Position{Row: row + dRow, Col: col + dCol}
	case dRow != 0 && CanMoveTo(m, p, row+dRow, col):
		p.Pos = Position{Row: row + dRow, Col: col}
	case dCol != 0 && CanMoveTo(m, p, row, col+dCol):
		p.Pos = Position{Row: row, Col: col + dCol}
	}
	return p
}

// moveBot walks a bot toward the head of its path. It moves along the
// dominant axis while easing the other axis back to the lane centre, snaps
// onto the node once within one step, and drops its path when blocked so the
// controller plans again.
func moveBot(m Model, p Player) Player {
	if len(p.BotPath) == 0 {
		p.AIDirection = DirNone
		p.Moving = false
		return p
	}

	p.Moving = true
	target := p.BotPath[0]
	dx := float64(target.Col) - p.Pos.Col
	dy := float64(target.Row) - p.Pos.Row

	var moveX, moveY float64
	if math.Abs(dx) > math.Abs(dy) {
		p.AIDirection = DirRight
		if dx < 0 {
			p.AIDirection = DirLeft
		}
		moveX = math.Copysign(math.Min(math.Abs(dx), p.Speed), dx)
		if off := math.Round(p.Pos.Row) - p.Pos.Row; math.Abs(off) > alignEpsilon {
			moveY = math.Copysign(math.Min(math.Abs(off), p.Speed/2), off)
		}
	} else {
		p.AIDirection = DirDown
		if dy < 0 {
			p.AIDirection = DirUp
		}
		moveY = math.Copysign(math.Min(math.Abs(dy), p.Speed), dy)
		if off := math.Round(p.Pos.Col) - p.Pos.Col; math.Abs(off) > alignEpsilon {
			moveX = math.Copysign(math.Min(math.Abs(off), p.Speed/2), off)
		}
	}
	p.Direction = p.AIDirection

	if math.Hypot(dx, dy) <= p.Speed {
		if !CanMoveTo(m, p, float64(target.Row), float64(target.Col)) {
			p.Moving = false
			p.BotPath = nil
			return p
		}
		p.Pos = target.Position()
		p.BotPath = p.BotPath[1:]
		p.Moving = len(p.BotPath) > 0
		return p
	}

	row, col := roundHundredth(p.Pos.Row+moveY), roundHundredth(p.Pos.Col+moveX)
	switch {
	case CanMoveTo(m, p, row, col):
		p.Pos = Position{Row: row, Col: col}
	case moveX != 0 && CanMoveTo(m, p, p.Pos.Row, col):
		p.Pos = Position{Row: p.Pos.Row, Col: col}
	case moveY != 0 && CanMoveTo(m, p, row, p.Pos.Col):
		p.Pos = Position{Row: row, Col: p.Pos.Col}
	default:
		p.Moving = false
		p.BotPath = nil
	}
	return p
}

// roundHundredth trims float drift so bots settle exactly on lane centres.
func roundHundredth(v float64) float64 {
	return math.Round(v*100) / 100
}
