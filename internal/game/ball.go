// Package game implements the brick breaker simulation engine: entities,
// collision resolution, power-up effects and the play/won/game-over state
// machine. It has no dependency on terminal, audio or timing code; drivers
// call Engine.Tick with a time delta and read State between ticks.
package game

import "github.com/vovakirdan/brick-breaker/internal/core"

// Ball is a moving circular body. X and Y are the top-left corner of the
// enclosing square; velocity is in field units per second.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Size returns the ball diameter.
func (b Ball) Size() float64 {
	return 2 * b.Radius
}

// CenterX returns the horizontal center of the ball.
func (b Ball) CenterX() float64 {
	return b.X + b.Radius
}

// CenterY returns the vertical center of the ball.
func (b Ball) CenterY() float64 {
	return b.Y + b.Radius
}

// Bounds returns the ball's axis-aligned bounding box. Position and size are
// truncated to whole field units.
func (b Ball) Bounds() core.Rect {
	s := int(b.Size())
	return core.NewRect(int(b.X), int(b.Y), s, s)
}

// Move advances the ball by its velocity over dt seconds.
func (b *Ball) Move(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// BounceX reverses horizontal velocity.
func (b *Ball) BounceX() {
	b.VX = -b.VX
}

// BounceY reverses vertical velocity.
func (b *Ball) BounceY() {
	b.VY = -b.VY
}
