package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
)

// Overlay texts.
const (
	titleText     = "Skyhop"
	startText     = "Click or hold SPACE to fly"
	hintText      = "The longer you hold, the higher you'll go!"
	gameOverText  = "Game Over!"
	playAgainText = "Click or press SPACE to play again"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrown:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Renderer draws snapshots into a cell screen, scaling canvas units to cells.
type Renderer struct {
	geo config.Geometry
}

// NewRenderer creates a renderer for the given playfield geometry.
func NewRenderer(geo config.Geometry) Renderer {
	return Renderer{geo: geo}
}

func (r Renderer) col(x float64, s *core.Screen) int {
	return core.Scale(x, r.geo.Width, s.Width())
}

func (r Renderer) row(y float64, s *core.Screen) int {
	return core.Scale(y, r.geo.Height, s.Height())
}

// Draw renders the playfield, the HUD and the overlay for the current phase.
func (r Renderer) Draw(s *core.Screen, snap game.Snapshot, ov game.Overlay) {
	s.Clear()
	if s.Width() == 0 || s.Height() == 0 {
		return
	}

	ground := r.row(r.geo.Height-r.geo.GroundMargin, s)
	r.drawGround(s, ground)
	for _, o := range snap.Obstacles {
		r.drawObstacle(s, o, ground)
	}
	r.drawEntity(s, snap)

	switch ov.Phase {
	case game.PhaseIdle:
		drawPanel(s, []panelLine{
			{titleText, core.ColorBrightYellow},
			{"", core.ColorDefault},
			{startText, core.ColorBrightWhite},
			{hintText, core.ColorWhite},
		})
	case game.PhaseRunning:
		s.DrawText(1, 0, fmt.Sprintf("Score: %d", ov.Score), core.ColorBrightWhite)
	case game.PhaseOver:
		drawPanel(s, []panelLine{
			{gameOverText, core.ColorRed},
			{"", core.ColorDefault},
			{fmt.Sprintf("Score: %d", ov.Score), core.ColorBrightWhite},
			{fmt.Sprintf("High Score: %d", ov.HighScore), core.ColorBrightYellow},
			{"", core.ColorDefault},
			{playAgainText, core.ColorWhite},
		})
	}
}

func (r Renderer) drawGround(s *core.Screen, top int) {
	s.DrawHLine(0, top, s.Width(), '▀', core.ColorBrightGreen)
	for y := top + 1; y < s.Height(); y++ {
		s.DrawHLine(0, y, s.Width(), '░', core.ColorBrown)
	}
}

func (r Renderer) drawObstacle(s *core.Screen, o game.Obstacle, ground int) {
	left := r.col(o.X, s)
	right := r.col(o.X+r.geo.PipeWidth, s)
	if right <= left {
		right = left + 1
	}
	gapTop := r.row(o.GapTop, s)
	gapBottom := r.row(o.GapTop+r.geo.GapHeight, s)

	body := core.NewRect(left, 0, right-left, gapTop)
	s.DrawRect(body, '█', core.ColorGreen)
	s.DrawRect(core.NewRect(left, gapBottom, right-left, ground-gapBottom), '█', core.ColorGreen)

	// Caps overhang the body by one cell on each side.
	if gapTop > 0 {
		s.DrawHLine(left-1, gapTop-1, right-left+2, '▄', core.ColorBrightGreen)
	}
	if gapBottom < ground {
		s.DrawHLine(left-1, gapBottom, right-left+2, '▀', core.ColorBrightGreen)
	}
}

func (r Renderer) drawEntity(s *core.Screen, snap game.Snapshot) {
	x := r.col(r.geo.EntityX, s)
	y := r.row(snap.EntityY, s)
	s.SetColored(x, y, '●', core.ColorBrightYellow)
	s.SetColored(x+1, y, '▸', core.ColorRed)
	wing := '˅'
	if snap.EntityVelocity < 0 {
		wing = '˄'
	}
	s.SetColored(x-1, y, wing, core.ColorYellow)
}

type panelLine struct {
	text  string
	color core.Color
}

// drawPanel draws a boxed block of centered lines in the middle of the screen.
func drawPanel(s *core.Screen, lines []panelLine) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l.text)))
	}
	width = core.Clamp(width+4, 1, s.Width())
	height := core.Clamp(len(lines)+2, 1, s.Height())

	box := core.NewRect((s.Width()-width)/2, (s.Height()-height)/2, width, height)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, core.ColorBrightCyan)
	for i, l := range lines {
		if l.text != "" {
			s.DrawTextCentered(box.Y+1+i, l.text, l.color)
		}
	}
}
