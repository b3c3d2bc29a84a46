package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/game"
)

// Glyphs used for field elements.
const (
	glyphBrick   = '█'
	glyphSpecial = '▓'
	glyphPaddle  = '▀'
	glyphBall    = '●'
)

// Minimum playfield size in cells, border excluded.
const (
	minFieldCols = 20
	minFieldRows = 8
)

var (
	colorBorder = core.Color("#5f5f87")
	colorHUD    = core.Color("#ffffaf")
	colorBall   = core.ColorWhite
	colorPaddle = core.Color("#87d7ff")
)

// styleFor returns the lipgloss style for a cell color.
func styleFor(c core.Color) lipgloss.Style {
	if c == core.ColorDefault {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
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
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// HUD is the status information drawn above the field.
type HUD struct {
	Layout string
	Paused bool
	Runs   int // Runs recorded in the session ledger for this layout
}

// fieldArea returns the screen rectangle the playfield is projected onto:
// the screen minus the HUD row and the border.
func fieldArea(s *core.Screen) core.Rect {
	return core.NewRect(1, 2, s.Width()-2, s.Height()-3)
}

// DrawGame paints the HUD, the field border, every field element and the
// status overlay into s.
func DrawGame(s *core.Screen, st *game.State, field config.Field, hud HUD) {
	s.Clear()

	area := fieldArea(s)
	if area.W < minFieldCols || area.H < minFieldRows {
		s.DrawTextCentered(s.Height()/2, "terminal too small", colorHUD)
		return
	}

	drawHUD(s, st, hud)
	s.DrawBox(core.NewRect(0, 1, s.Width(), s.Height()-1), colorBorder)

	sx := float64(area.W) / float64(field.Width)
	sy := float64(area.H) / float64(field.Height)
	project := func(r core.Rect) core.Rect {
		p := r.Scale(sx, sy)
		p.X += area.X
		p.Y += area.Y
		return clip(p, area)
	}

	for _, b := range st.Bricks() {
		glyph := glyphBrick
		if b.Special {
			glyph = glyphSpecial
		}
		s.DrawRect(project(b.Bounds()), glyph, b.Color)
	}

	for _, p := range st.PowerUps() {
		r := project(p.Bounds())
		if r.Empty() {
			continue
		}
		s.SetCell(r.X, r.Y, p.Type.Glyph(), p.Type.Color())
	}

	s.DrawRect(project(st.Paddle().Bounds()), glyphPaddle, colorPaddle)

	for _, b := range st.Balls() {
		r := project(b.Bounds())
		if r.Empty() {
			continue
		}
		// Balls grow with power-ups; draw the center cell only while small.
		if r.W <= 2 && r.H <= 1 {
			s.SetCell(r.X, r.Y, glyphBall, colorBall)
			continue
		}
		s.DrawRect(r, glyphBall, colorBall)
	}

	drawOverlay(s, st, hud, area)
}

func drawHUD(s *core.Screen, st *game.State, hud HUD) {
	left := fmt.Sprintf(" SCORE %d  LIVES %d  BEST %d", st.Score(), st.Lives(), st.BestScore())
	right := fmt.Sprintf("%s  bricks %d  runs %d ", hud.Layout, st.BricksLeft(), hud.Runs)
	s.DrawTextColor(0, 0, left, colorHUD)
	s.DrawTextColor(s.Width()-len([]rune(right)), 0, right, colorHUD)
}

func drawOverlay(s *core.Screen, st *game.State, hud HUD, area core.Rect) {
	var lines []string
	var c core.Color
	switch {
	case st.Won():
		lines = []string{"Y O U   W I N", fmt.Sprintf("score %d", st.Score()), "enter to play again"}
		c = core.ColorGreen
	case st.GameOver():
		lines = []string{"G A M E   O V E R", fmt.Sprintf("score %d  best %d", st.Score(), st.BestScore()), "enter to restart"}
		c = core.ColorRed
	case hud.Paused:
		lines = []string{"PAUSED", "p to resume"}
		c = colorHUD
	default:
		return
	}

	y := area.Y + area.H/2 - len(lines)/2
	for i, line := range lines {
		s.DrawTextCentered(y+i, " "+line+" ", c)
	}
}

// clip returns the part of r inside bounds. The result may be empty.
func clip(r, bounds core.Rect) core.Rect {
	x0 := max(r.X, bounds.X)
	y0 := max(r.Y, bounds.Y)
	x1 := min(r.Right(), bounds.Right())
	y1 := min(r.Bottom(), bounds.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}
