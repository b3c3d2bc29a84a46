package game

import (
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
)

// randomGreen is the fixed green channel of randomly colored bricks.
const randomGreen = 0.8

// Brick is a single destructible target. Bricks never change once built.
type Brick struct {
	X, Y    int
	W, H    int
	Color   core.Color
	Special bool // Drops a power-up when destroyed
}

// Bounds returns the brick's bounding box.
func (b Brick) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// BrickField is the ordered collection of surviving bricks. Order is the
// generation order (row by row, left to right) and decides which brick wins
// when a ball overlaps several at once.
type BrickField struct {
	bricks []Brick
}

// NewBrickField lays out bricks row by row. Rows flagged special get exactly
// one special brick, chosen uniformly among the row's bricks.
func NewBrickField(layout config.Level, geo config.Bricks, rng *SimpleRNG) *BrickField {
	f := &BrickField{bricks: make([]Brick, 0, layout.Bricks())}

	for row, count := range layout.RowCounts {
		special := -1
		if layout.HasSpecial(row) {
			special = rng.Intn(count)
		}

		y := geo.OriginY + row*(geo.Height+geo.Spacing)
		for col := range count {
			b := Brick{
				X: geo.OriginX + col*(geo.Width+geo.Spacing),
				Y: y,
				W: geo.Width,
				H: geo.Height,
			}
			switch {
			case col == special:
				b.Color = core.ColorRed
				b.Special = true
			case len(layout.Colors) > 0:
				b.Color = core.Color(layout.Colors[row])
			default:
				b.Color = randomColor(rng)
			}
			f.bricks = append(f.bricks, b)
		}
	}

	return f
}

// randomColor picks a color with random red and blue and a fixed green.
func randomColor(rng *SimpleRNG) core.Color {
	c := colorful.Color{R: rng.Float64(), G: randomGreen, B: rng.Float64()}
	return core.Color(c.Hex())
}

// Len returns the number of surviving bricks.
func (f *BrickField) Len() int {
	return len(f.bricks)
}

// Empty reports whether every brick has been destroyed.
func (f *BrickField) Empty() bool {
	return len(f.bricks) == 0
}

// Bricks returns a copy of the surviving bricks in field order.
func (f *BrickField) Bricks() []Brick {
	return slices.Clone(f.bricks)
}

// Specials returns the number of surviving special bricks.
func (f *BrickField) Specials() int {
	n := 0
	for _, b := range f.bricks {
		if b.Special {
			n++
		}
	}
	return n
}

// hit removes and returns the first brick in field order overlapping r.
func (f *BrickField) hit(r core.Rect) (Brick, bool) {
	for i, b := range f.bricks {
		if b.Bounds().Intersects(r) {
			f.bricks = slices.Delete(f.bricks, i, i+1)
			return b, true
		}
	}
	return Brick{}, false
}
