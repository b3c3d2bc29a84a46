package game

import "github.com/vovakirdan/brick-breaker/internal/core"

// PowerUpType tags a power-up with the effect it applies on collection.
type PowerUpType int

const (
	PowerUpBiggerBall   PowerUpType = iota // Triple the radius of every ball
	PowerUpLongerPaddle                    // Widen the paddle
	PowerUpManyBalls                       // Spawn extra balls at the paddle
	PowerUpDoubleSpeed                     // Double every ball's velocity
	powerUpTypeCount                       // Sentinel for counting types
)

// PowerUpTypes lists every power-up type in declaration order.
func PowerUpTypes() []PowerUpType {
	types := make([]PowerUpType, 0, powerUpTypeCount)
	for t := range powerUpTypeCount {
		types = append(types, t)
	}
	return types
}

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpBiggerBall:
		return "BiggerBall"
	case PowerUpLongerPaddle:
		return "LongerPaddle"
	case PowerUpManyBalls:
		return "ManyBalls"
	case PowerUpDoubleSpeed:
		return "DoubleSpeed"
	default:
		return "Unknown"
	}
}

// Glyph returns the display character for a power-up type.
func (t PowerUpType) Glyph() rune {
	switch t {
	case PowerUpBiggerBall:
		return 'B'
	case PowerUpLongerPaddle:
		return 'L'
	case PowerUpManyBalls:
		return 'M'
	case PowerUpDoubleSpeed:
		return 'S'
	default:
		return '?'
	}
}

// Color returns the display color for a power-up type.
func (t PowerUpType) Color() core.Color {
	switch t {
	case PowerUpBiggerBall:
		return core.ColorOrange
	case PowerUpLongerPaddle:
		return core.ColorGreen
	case PowerUpManyBalls:
		return core.ColorBlue
	case PowerUpDoubleSpeed:
		return core.ColorYellow
	default:
		return core.ColorWhite
	}
}

// PowerUp is a falling collectible. X and Y are the top-left corner.
type PowerUp struct {
	X, Y int
	Size int
	Type PowerUpType
}

// Bounds returns the power-up's bounding box.
func (p PowerUp) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Size, p.Size)
}

// Fall moves the power-up down by step units.
func (p *PowerUp) Fall(step int) {
	p.Y += step
}
