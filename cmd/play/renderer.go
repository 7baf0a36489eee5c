package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/service"
)

// Color palette
var (
	wallStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	insideStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#1a1a2e"))

	outsideStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#10241a")).
			Foreground(lipgloss.Color("#2e5c3e"))

	goalStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ffcc00")).
			Bold(true)

	starStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	starOnGoalStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	previewStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#444466"))

	// One color per avatar
	avatarColors = []lipgloss.Color{
		lipgloss.Color("#00ff88"), // Green
		lipgloss.Color("#4488ff"), // Blue
		lipgloss.Color("#ff44ff"), // Magenta
		lipgloss.Color("#ffff44"), // Yellow
		lipgloss.Color("#ff4444"), // Red
	}

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	solvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))
)

// decorationGlyphs maps outside decorations to their terminal look.
var decorationGlyphs = map[engine.Decoration]string{
	engine.Rock:      "oo",
	engine.ShortTree: "▲ ",
	engine.TallTree:  "▲▲",
	engine.UglyTree:  "¥ ",
}

// renderView lays out the full screen: header, board, HUD.
func renderView(m model) string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.snap == nil {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("★ STAR PUSHER") +
		statusStyle.Render(fmt.Sprintf("  session %s", m.sessionID)))
	b.WriteString("\n")
	b.WriteString(renderStatusLine(m))
	b.WriteString("\n\n")
	b.WriteString(renderBoard(m.snap))
	b.WriteString("\n")
	b.WriteString(renderHUD(m.snap))
	return b.String()
}

func renderStatusLine(m model) string {
	snap := m.snap
	line := statusStyle.Render(fmt.Sprintf("Level %d/%d (%s)  Steps %d  Pushes %d",
		snap.LevelIndex+1, snap.LevelCount, snap.PackName, snap.Steps, snap.Pushes))
	if m.status != "" {
		line += "  " + statusStyle.Render(m.status)
	}
	return line
}

// renderBoard converts a snapshot into a styled terminal string. Cells are
// two characters wide for a square-ish appearance.
func renderBoard(snap *service.Snapshot) string {
	grid := snap.Grid
	state := snap.State

	goalSet := make(map[engine.Position]bool, len(snap.Goals))
	for _, g := range snap.Goals {
		goalSet[g] = true
	}
	starSet := make(map[engine.Position]bool, len(state.Stars))
	for _, s := range state.Stars {
		starSet[s] = true
	}
	previewSet := make(map[engine.Position]bool, len(snap.PreviewPath))
	for _, p := range snap.PreviewPath {
		previewSet[p] = true
	}

	var rows []string
	for y := 0; y < grid.Height; y++ {
		var cells []string
		for x := 0; x < grid.Width; x++ {
			pos := engine.Position{X: x, Y: y}
			cells = append(cells, renderCell(grid.Tiles[y][x], pos, snap, goalSet, starSet, previewSet))
		}
		rows = append(rows, strings.Join(cells, ""))
	}

	return strings.Join(rows, "\n")
}

// renderCell renders a single board cell with the appropriate style.
// Priority: player > star > goal > preview > tile.
func renderCell(
	tile engine.Tile,
	pos engine.Position,
	snap *service.Snapshot,
	goalSet, starSet, previewSet map[engine.Position]bool,
) string {
	onGoal := goalSet[pos]

	if pos == snap.State.Player {
		color := avatarColors[snap.Avatar%len(avatarColors)]
		style := lipgloss.NewStyle().Background(lipgloss.Color("#1a1a2e")).Foreground(color).Bold(true)
		if onGoal {
			style = style.Underline(true)
		}
		return style.Render("☻ ")
	}

	if starSet[pos] {
		if onGoal {
			return starOnGoalStyle.Render("★ ")
		}
		return starStyle.Render("★ ")
	}

	if onGoal {
		return goalStyle.Render("··")
	}

	if previewSet[pos] {
		return previewStyle.Render("◦ ")
	}

	switch tile.Kind {
	case engine.Wall:
		return wallStyle.Render("██")
	case engine.OutsideFloor:
		if glyph, ok := decorationGlyphs[tile.Decoration]; ok {
			return outsideStyle.Render(glyph)
		}
		return outsideStyle.Render("  ")
	default:
		return insideStyle.Render("  ")
	}
}

// renderHUD renders the lines under the board.
func renderHUD(snap *service.Snapshot) string {
	var parts []string

	switch {
	case snap.Solved:
		parts = append(parts, solvedStyle.Render("★ SOLVED! Press n for the next level."))
	case snap.Following:
		parts = append(parts, statusStyle.Render("Walking... (any move key cancels)"))
	}

	parts = append(parts, helpStyle.Render(
		"Arrows/hjkl: Move  Mouse: Walk  u: Undo  r: Redo  Backspace: Reset  n/b: Level  p: Avatar  q: Quit"))

	return strings.Join(parts, "\n")
}
