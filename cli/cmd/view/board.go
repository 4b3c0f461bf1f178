package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/level"
)

// Cell glyphs.
const (
	glyphKnight    = "K"
	glyphMage      = "M"
	glyphDragon    = "D"
	glyphCandidate = "d"
	glyphAttack    = "x"
	glyphProbe     = "?"
)

//nolint:gochecknoglobals
var (
	cellStyle = lipgloss.NewStyle().Width(3).Align(lipgloss.Center).Bold(true)

	tileStyle = map[level.Tile]lipgloss.Style{
		level.ROAD: cellStyle.Background(lipgloss.Color("#8a7f6a")).Foreground(lipgloss.Color("#ffffff")),
		level.WALL: cellStyle.Background(lipgloss.Color("#4a4a4a")).Foreground(lipgloss.Color("#ffffff")),
		level.HOLE: cellStyle.Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#ffffff")),
	}

	dragonColor = lipgloss.Color("#d7263d")
	attackStyle = cellStyle.Background(lipgloss.Color("#d7263d")).Foreground(lipgloss.Color("#ffffff"))
	probeStyle  = cellStyle.Background(lipgloss.Color("#f4d35e")).Foreground(lipgloss.Color("#000000"))

	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#d7263d")).
			Padding(1, 2)
)

// Frame renders f.
func Frame(f game.Frame) string {
	if f.Kind == game.DIALOG {
		return Dialog(f.Dialog)
	}

	return Board(f, "")
}

// Dialog renders a death dialog.
func Dialog(text string) string {
	return dialogStyle.Render(text)
}

// Board renders a LEVEL frame. If color is a lipgloss color string the
// border is drawn in it.
func Board(f game.Frame, color string) string {
	var rows []string

	for r, tiles := range f.Tiles {
		cells := make([]string, len(tiles))

		for c, tile := range tiles {
			cells[c] = cell(f, level.Position{Row: r, Column: c}, tile)
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	style := boardStyle
	if color != "" {
		style = style.BorderForeground(lipgloss.Color(color))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		statusStyle.Render(Status(f)))
}

func cell(f game.Frame, p level.Position, tile level.Tile) string {
	style := tileStyle[tile]
	glyph := " "

	switch {
	case f.Knight != nil && f.Knight.Position == p:
		glyph = glyphKnight
	case f.Mage != nil && f.Mage.Position == p:
		glyph = glyphMage
	case f.Dragon != nil && containsPosition(f.Dragon.Positions, p):
		glyph = glyphDragon
		if len(f.Dragon.Positions) > 1 {
			glyph = glyphCandidate
		}

		style = style.Foreground(dragonColor)
	}

	switch {
	case f.Attack != nil && *f.Attack == p:
		style = attackStyle
		if glyph == " " {
			glyph = glyphAttack
		}
	case f.Probe != nil && *f.Probe == p:
		style = probeStyle
		if glyph == " " {
			glyph = glyphProbe
		}
	}

	return style.Render(glyph)
}

func containsPosition(ps []level.Position, p level.Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}

	return false
}

// Status summarizes the characters in f on one line.
func Status(f game.Frame) string {
	var parts []string

	if f.Knight != nil {
		parts = append(parts, fmt.Sprintf("knight %s atk %d", f.Knight.Position, f.Knight.Attack))
	}

	if f.Mage != nil {
		parts = append(parts, fmt.Sprintf("mage %s atk %d", f.Mage.Position, f.Mage.Attack))
	}

	if f.Dragon != nil {
		parts = append(parts, fmt.Sprintf("dragon hp %d", f.Dragon.HP))
	}

	return strings.Join(parts, "  ")
}
