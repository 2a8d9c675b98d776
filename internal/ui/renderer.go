package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/bomber-arena/internal/game"
)

// Color palette
var (
	// Tile styles
	hardBlockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	softBlockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B6914")).
			Foreground(lipgloss.Color("#A0772B"))

	rubbleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#8B6914"))

	emptyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#1a1a2e"))

	bombStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	fireStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#ff6600")).
			Foreground(lipgloss.Color("#ffcc00")).
			Bold(true)

	powerupStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#44ffff")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#888888"))

	// Player colors (4 distinct colors for up to 4 players)
	playerColors = []lipgloss.Color{
		lipgloss.Color("#00ff88"), // Green
		lipgloss.Color("#4488ff"), // Blue
		lipgloss.Color("#ff44ff"), // Magenta
		lipgloss.Color("#ffff44"), // Yellow
	}

	deadPlayerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	warmupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff")).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

var powerupGlyphs = map[game.Powerup]string{
	game.FireUp:  "F+",
	game.BombUp:  "B+",
	game.SpeedUp: "S+",
	game.Rainbow: "**",
	game.Vest:    "V!",
}

// RenderBoard converts a snapshot into a styled terminal string. Each cell
// is 2 characters wide for a square-ish appearance.
func RenderBoard(m game.Model) string {
	if len(m.Grid) == 0 {
		return "Waiting for game state..."
	}

	bombs := make(map[game.Point]bool, len(m.Bombs))
	for _, b := range m.Bombs {
		bombs[b.Pos] = true
	}

	players := make(map[game.Point]game.Player)
	for _, p := range m.Players {
		if p.Alive {
			players[p.Cell()] = p
		}
	}

	var path map[game.Point]bool
	if m.Debug {
		path = botPaths(m)
	}

	rows := make([]string, 0, m.Grid.Rows())
	for r := range m.Grid {
		var cells strings.Builder
		for c := range m.Grid[r] {
			at := game.Point{Row: r, Col: c}
			cells.WriteString(renderCell(m.Grid[r][c], at, bombs, players, path))
		}
		rows = append(rows, cells.String())
	}
	return strings.Join(rows, "\n")
}

// botPaths collects every cell on a living bot's remaining path.
func botPaths(m game.Model) map[game.Point]bool {
	out := make(map[game.Point]bool)
	for _, p := range m.Players {
		if !p.Alive || !p.IsBot() {
			continue
		}
		for _, step := range p.BotPath {
			out[step] = true
		}
	}
	return out
}

// renderCell renders a single board cell.
// Priority: Player > Fire > Bomb > Powerup > Rubble > Debug path > Tile
func renderCell(
	cell game.Cell,
	at game.Point,
	bombs map[game.Point]bool,
	players map[game.Point]game.Player,
	path map[game.Point]bool,
) string {
	if p, ok := players[at]; ok {
		style := lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(playerColors[p.Color%len(playerColors)]).
			Bold(true)
		if p.HasVest {
			style = style.Underline(true)
		}
		return style.Render(p.Label)
	}

	if cell.HasExplosion {
		return fireStyle.Render("░░")
	}

	if bombs[at] {
		return bombStyle.Render("()")
	}

	if cell.VisiblePowerup() {
		return powerupStyle.Render(powerupGlyphs[cell.Powerup])
	}

	if cell.IsDestroying {
		return rubbleStyle.Render("..")
	}

	if path[at] {
		return pathStyle.Render("··")
	}

	switch cell.Type {
	case game.HardBlock:
		return hardBlockStyle.Render("██")
	case game.SoftBlock:
		return softBlockStyle.Render("▒▒")
	default:
		return emptyStyle.Render("  ")
	}
}

// RenderHUD renders round status and the player list.
func RenderHUD(m game.Model, fps int) string {
	var parts []string

	parts = append(parts, titleStyle.Render("BOMBERMAN"))
	parts = append(parts, dimStyle.Render(fmt.Sprintf("match %s", shortID(m))))
	parts = append(parts, fmt.Sprintf("Round %d · first to %d", m.RoundNumber, m.RoundsToWin))
	parts = append(parts, "")

	switch m.State {
	case game.StateWarmup:
		parts = append(parts, warmupStyle.Render(fmt.Sprintf("GET READY %d", seconds(m.RoundTimer, fps))))
	case game.StatePlaying:
		parts = append(parts, fmt.Sprintf("Time %s", clock(seconds(m.RoundTimer, fps))))
	case game.StateRoundOver:
		parts = append(parts, winnerStyle.Render(winnerLine(m.RoundWinner, "ROUND")))
		parts = append(parts, "   Press [r] for the next round")
	case game.StateMatchOver:
		parts = append(parts, winnerStyle.Render(winnerLine(m.RoundWinner, "MATCH")))
		parts = append(parts, "   Press [r] for a new match")
	}
	parts = append(parts, "")

	parts = append(parts, dimStyle.Render("Players:"))
	for _, p := range m.Players {
		nameStyle := lipgloss.NewStyle().Foreground(playerColors[p.Color%len(playerColors)])
		status := "  "
		if !p.Alive {
			status = "x "
			nameStyle = deadPlayerStyle
		}

		kind := "human"
		if p.IsBot() {
			kind = string(p.BotType)
		}

		var buffs string
		if p.HasVest {
			buffs += " vest"
		}
		if p.RainbowTimer > 0 {
			buffs += " rainbow"
		}

		parts = append(parts, fmt.Sprintf("%s%s %-8s wins %d [bombs %d/%d range %d]%s",
			status,
			nameStyle.Render(p.Label),
			kind,
			p.Wins,
			p.MaxBombs-p.ActiveBombs,
			p.MaxBombs,
			p.BombRange,
			buffs,
		))
	}

	parts = append(parts, "")
	parts = append(parts, dimStyle.Render("P1 Arrows+Space | P2 WASD+X"))
	parts = append(parts, dimStyle.Render("Esc: Debug | R: Next | Q: Quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

// RenderDebug lists every bot's controller state.
func RenderDebug(m game.Model) string {
	lines := []string{dimStyle.Render(fmt.Sprintf("tick %d · bombs %d · explosions %d", m.CurrentTime, len(m.Bombs), len(m.Explosions)))}
	for _, p := range m.Players {
		if !p.IsBot() {
			continue
		}
		goal := "-"
		if p.BotGoal != game.NoGoal {
			goal = fmt.Sprintf("(%d,%d)", p.BotGoal.Row, p.BotGoal.Col)
		}
		lines = append(lines, fmt.Sprintf("%s %-8s %-11s goal %-7s steps %-3d pos (%.2f,%.2f)",
			p.Label, p.BotType, p.BotState, goal, len(p.BotPath), p.Pos.Row, p.Pos.Col))
	}
	return strings.Join(lines, "\n")
}

func winnerLine(winner, scope string) string {
	if winner == game.DrawLabel || winner == "" {
		return "DRAW"
	}
	return fmt.Sprintf("%s WINS THE %s!", winner, scope)
}

func shortID(m game.Model) string {
	return m.MatchID.String()[:8]
}

func seconds(ticks, fps int) int {
	if fps <= 0 {
		return 0
	}
	return (ticks + fps - 1) / fps
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
