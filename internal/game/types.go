package game

import (
	"math"

	"github.com/google/uuid"
)

// CellType represents the type of a cell on the game board.
type CellType int

const (
	Empty     CellType = iota
	HardBlock          // Indestructible
	SoftBlock          // Destructible by bombs
)

func (t CellType) String() string {
	switch t {
	case HardBlock:
		return "hard"
	case SoftBlock:
		return "soft"
	default:
		return "empty"
	}
}

// Powerup is the kind of pickup a destroyed soft block may leave behind.
type Powerup int

const (
	NoPowerup Powerup = iota
	FireUp
	BombUp
	SpeedUp
	Rainbow
	Vest
)

func (p Powerup) String() string {
	switch p {
	case FireUp:
		return "FireUp"
	case BombUp:
		return "BombUp"
	case SpeedUp:
		return "SpeedUp"
	case Rainbow:
		return "Rainbow"
	case Vest:
		return "Vest"
	default:
		return "none"
	}
}

// Direction represents a movement direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Point is a discrete grid coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoGoal marks a bot that has no goal cell.
var NoGoal = Point{Row: -1, Col: -1}

// cardinal lists the four blast/neighbour directions in search order.
var cardinal = [4]Point{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

func (p Point) add(d Point, k int) Point {
	return Point{Row: p.Row + d.Row*k, Col: p.Col + d.Col*k}
}

// Manhattan returns the grid distance between two points.
func (p Point) Manhattan(q Point) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

// Position returns the continuous position centred on this cell.
func (p Point) Position() Position {
	return Position{Row: float64(p.Row), Col: float64(p.Col)}
}

// Position is a continuous coordinate. Integer values sit exactly on a cell.
type Position struct {
	Row float64 `json:"row"`
	Col float64 `json:"col"`
}

// Point rounds the position to the cell it mostly occupies.
func (p Position) Point() Point {
	return Point{Row: int(math.Round(p.Row)), Col: int(math.Round(p.Col))}
}

// Cell is a single board square.
type Cell struct {
	Type         CellType `json:"type"`
	HasExplosion bool     `json:"has_explosion"`
	// IsDestroying marks a crumbling soft block. It keeps Type SoftBlock but
	// is no longer solid; it becomes Empty when DestroyTimer reaches 0.
	IsDestroying bool     `json:"is_destroying"`
	DestroyTimer int      `json:"destroy_timer"`
	Powerup      Powerup  `json:"powerup"`
}

// Solid reports whether the cell stops movement and blast rays: hard
// blocks and soft blocks that are not already crumbling.
func (c Cell) Solid() bool {
	return c.Type == HardBlock || c.intactSoft()
}

func (c Cell) intactSoft() bool {
	return c.Type == SoftBlock && !c.IsDestroying
}

// VisiblePowerup reports whether a powerup can be picked up from the cell.
func (c Cell) VisiblePowerup() bool {
	return c.Powerup != NoPowerup && c.Type == Empty && !c.IsDestroying
}

// Grid is the board, indexed [row][col].
type Grid [][]Cell

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of columns.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds reports whether p lies on the board.
func (g Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.Rows() && p.Col >= 0 && p.Col < g.Cols()
}

// At returns the cell at p. p must be in bounds.
func (g Grid) At(p Point) Cell {
	return g[p.Row][p.Col]
}

func (g Grid) clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = make([]Cell, len(g[r]))
		copy(out[r], g[r])
	}
	return out
}

// BotState is the bot controller's current intent.
type BotState int

const (
	BotIdle BotState = iota
	BotWander
	BotEscape
	BotAttack
	BotGetPowerup
)

func (s BotState) String() string {
	switch s {
	case BotWander:
		return "WANDER"
	case BotEscape:
		return "ESCAPE"
	case BotAttack:
		return "ATTACK"
	case BotGetPowerup:
		return "GET_POWERUP"
	default:
		return "-"
	}
}

// Player is a human or bot competitor.
type Player struct {
	ID          int       `json:"id"`
	Label       string    `json:"label"`
	Pos         Position  `json:"pos"`
	StartPos    Position  `json:"start_pos"`
	Alive       bool      `json:"alive"`
	Human       bool      `json:"human"`
	Direction   Direction `json:"direction"`
	Moving      bool      `json:"moving"`
	Speed       float64   `json:"speed"`
	BombRange   int       `json:"bomb_range"`
	MaxBombs    int       `json:"max_bombs"`
	ActiveBombs int       `json:"active_bombs"` // Bombs currently on the board
	Wins        int       `json:"wins"`
	Color       int       `json:"color"` // Palette index (0-3)

	HasVest      bool `json:"has_vest"`
	VestTimer    int  `json:"vest_timer"`    // Ticks left
	RainbowTimer int  `json:"rainbow_timer"` // Ticks left

	// Bot-only fields.
	BotType          Archetype `json:"bot_type,omitempty"`
	BotState         BotState  `json:"bot_state"`
	BotGoal          Point     `json:"bot_goal"`
	BotPath          []Point   `json:"bot_path,omitempty"`
	LastReevaluation int       `json:"last_reevaluation"`
	AIDirection      Direction `json:"ai_direction"`
	Tuning           BotTuning `json:"tuning"`
}

// IsBot reports whether the player is AI controlled.
func (p Player) IsBot() bool {
	return !p.Human && p.BotType != ""
}

// Cell returns the grid cell the player occupies.
func (p Player) Cell() Point {
	return p.Pos.Point()
}

// Bomb is a planted, ticking bomb.
type Bomb struct {
	Pos       Point `json:"pos"`
	PlantedAt int   `json:"planted_at"`
	Range     int   `json:"range"`
	PlayerID  int   `json:"player_id"`
}

// Explosion is the full set of cells one detonation covers.
type Explosion struct {
	Cells     []Point `json:"cells"`
	CreatedAt int     `json:"created_at"`
}

// MatchState is the round/match phase.
type MatchState int

const (
	StateWarmup MatchState = iota
	StatePlaying
	StateRoundOver
	StateMatchOver
)

func (s MatchState) String() string {
	switch s {
	case StateWarmup:
		return "warmup"
	case StatePlaying:
		return "playing"
	case StateRoundOver:
		return "roundOver"
	case StateMatchOver:
		return "matchOver"
	default:
		return "unknown"
	}
}

// DrawLabel is the round winner recorded when nobody survives.
const DrawLabel = "Draw"

// Model is the complete game state. A Model value handed out by the engine
// is never mutated afterwards; every update works on a fresh copy.
type Model struct {
	MatchID     uuid.UUID   `json:"match_id"`
	Grid        Grid        `json:"grid"`
	Players     []Player    `json:"players"`
	Bombs       []Bomb      `json:"bombs"`
	Explosions  []Explosion `json:"explosions"`
	Keys        KeySet      `json:"-"`
	CurrentTime int         `json:"current_time"`

	State         MatchState `json:"state"`
	RoundTimer    int        `json:"round_timer"`
	RoundNumber   int        `json:"round_number"`
	RoundWinner   string     `json:"round_winner,omitempty"`
	RoundsToWin   int        `json:"rounds_to_win"`
	RoundEndTimer int        `json:"round_end_timer"` // -1 while no end countdown runs
	Debug         bool       `json:"debug"`
}

// clone copies every slice the engine writes to. Bot paths and explosion
// cell lists are never written in place, so they stay shared.
func (m Model) clone() Model {
	out := m
	out.Grid = m.Grid.clone()
	out.Players = append([]Player(nil), m.Players...)
	out.Bombs = append([]Bomb(nil), m.Bombs...)
	out.Explosions = append([]Explosion(nil), m.Explosions...)
	return out
}

// BombAt reports whether a bomb occupies p.
func (m Model) BombAt(p Point) bool {
	for _, b := range m.Bombs {
		if b.Pos == p {
			return true
		}
	}
	return false
}

// AliveCount returns the number of living players.
func (m Model) AliveCount() int {
	n := 0
	for _, p := range m.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

// PlayerByID returns the player with the given id.
func (m Model) PlayerByID(id int) (Player, bool) {
	for _, p := range m.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
