package game

import "github.com/vovakirdan/brick-breaker/internal/core"

// Paddle is the player's horizontally constrained rectangle.
type Paddle struct {
	X      int // Left edge
	Y      int // Top edge, fixed for the whole game
	Width  int
	Height int
}

// Bounds returns the paddle's bounding box.
func (p Paddle) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// CenterX returns the horizontal center of the paddle.
func (p Paddle) CenterX() float64 {
	return float64(p.X) + float64(p.Width)/2
}

// clamp keeps the paddle within [margin, fieldW - width - margin].
func (p *Paddle) clamp(fieldW, margin int) {
	p.X = core.Clamp(p.X, margin, fieldW-p.Width-margin)
}
