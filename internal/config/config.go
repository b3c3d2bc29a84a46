// Package config provides YAML-based game configuration loading, difficulty
// presets and validation for the brick breaker.
package config

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrLevelShape is returned when a level descriptor's per-row sequences
// disagree in length.
var ErrLevelShape = errors.New("config: level rows, colors and special flags differ in length")

// Config contains all tunables of the simulation.
type Config struct {
	Field    Field    `yaml:"field"`
	Paddle   Paddle   `yaml:"paddle"`
	Ball     Ball     `yaml:"ball"`
	Bricks   Bricks   `yaml:"bricks"`
	PowerUps PowerUps `yaml:"powerups"`
	Gameplay Gameplay `yaml:"gameplay"`

	// Level names a registered static layout. Ignored when Layout is set.
	Level string `yaml:"level"`
	// Layout is an optional inline level descriptor.
	Layout *Level `yaml:"layout,omitempty"`
}

// Field defines the playfield size in field units.
type Field struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Paddle defines paddle geometry and movement.
type Paddle struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	BottomOffset int `yaml:"bottom_offset"` // Distance from the field bottom to the paddle top
	Step         int `yaml:"step"`          // Units moved per command
	Margin       int `yaml:"margin"`        // Minimum gap to the side walls
}

// Ball defines ball size and launch velocity.
type Ball struct {
	Radius     float64 `yaml:"radius"`
	LaunchVX   float64 `yaml:"launch_vx"`   // Units per second
	LaunchVY   float64 `yaml:"launch_vy"`   // Units per second, negative is up
	PaddleGain float64 `yaml:"paddle_gain"` // Horizontal velocity per unit of hit offset
}

// Bricks defines the brick grid geometry and scoring.
type Bricks struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Spacing int `yaml:"spacing"`
	OriginX int `yaml:"origin_x"`
	OriginY int `yaml:"origin_y"`
	Points  int `yaml:"points"`
}

// PowerUps defines falling power-up behavior and effect magnitudes.
type PowerUps struct {
	Size         int     `yaml:"size"`
	FallStep     int     `yaml:"fall_step"` // Units per tick, independent of dt
	PaddleGrowth int     `yaml:"paddle_growth"`
	BallGrowth   float64 `yaml:"ball_growth"` // Radius multiplier
	ExtraBalls   int     `yaml:"extra_balls"`
	ExtraVX      float64 `yaml:"extra_vx"`
	ExtraVY      float64 `yaml:"extra_vy"`
	SpeedFactor  float64 `yaml:"speed_factor"`
}

// Gameplay defines rules outside of physics.
type Gameplay struct {
	Lives int `yaml:"lives"`
}

// Level is a static layout descriptor. Colors and SpecialRows are optional;
// when present they must have one entry per row.
type Level struct {
	Name        string   `yaml:"name,omitempty"`
	RowCounts   []int    `yaml:"row_counts"`
	Colors      []string `yaml:"colors,omitempty"`       // "#rrggbb" per row; empty means random per brick
	SpecialRows []bool   `yaml:"special_rows,omitempty"` // empty means every row may hold a special brick
}

// Rows returns the number of brick rows.
func (l Level) Rows() int {
	return len(l.RowCounts)
}

// Bricks returns the total number of bricks in the layout.
func (l Level) Bricks() int {
	total := 0
	for _, n := range l.RowCounts {
		total += n
	}
	return total
}

// HasSpecial reports whether the given row may hold a special brick.
func (l Level) HasSpecial(row int) bool {
	if len(l.SpecialRows) == 0 {
		return true
	}
	return l.SpecialRows[row]
}

// Validate checks the descriptor shape.
func (l Level) Validate() error {
	if len(l.RowCounts) == 0 {
		return errors.New("config: level has no rows")
	}
	if len(l.Colors) != 0 && len(l.Colors) != len(l.RowCounts) {
		return fmt.Errorf("%w: %d rows, %d colors", ErrLevelShape, len(l.RowCounts), len(l.Colors))
	}
	if len(l.SpecialRows) != 0 && len(l.SpecialRows) != len(l.RowCounts) {
		return fmt.Errorf("%w: %d rows, %d special flags", ErrLevelShape, len(l.RowCounts), len(l.SpecialRows))
	}
	for i, n := range l.RowCounts {
		if n <= 0 {
			return fmt.Errorf("config: row %d has %d bricks", i, n)
		}
	}
	for i, c := range l.Colors {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("config: row %d color %q: %w", i, c, err)
		}
	}
	return nil
}

// Validate checks that the configuration describes a playable field.
func (c Config) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("config: field must be positive, got %dx%d", c.Field.Width, c.Field.Height)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return fmt.Errorf("config: paddle must be positive, got %dx%d", c.Paddle.Width, c.Paddle.Height)
	case c.Paddle.Width+2*c.Paddle.Margin > c.Field.Width:
		return fmt.Errorf("config: paddle width %d does not fit field width %d", c.Paddle.Width, c.Field.Width)
	case c.Paddle.BottomOffset <= 0 || c.Paddle.BottomOffset >= c.Field.Height:
		return fmt.Errorf("config: paddle bottom_offset %d outside field", c.Paddle.BottomOffset)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("config: ball radius must be positive, got %v", c.Ball.Radius)
	case c.Bricks.Width <= 0 || c.Bricks.Height <= 0:
		return fmt.Errorf("config: bricks must be positive, got %dx%d", c.Bricks.Width, c.Bricks.Height)
	case c.PowerUps.Size <= 0:
		return fmt.Errorf("config: power-up size must be positive, got %d", c.PowerUps.Size)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("config: lives must be positive, got %d", c.Gameplay.Lives)
	}
	if c.Layout != nil {
		return c.Layout.Validate()
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. The empty string is accepted and
// leaves the configuration untouched.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 3
		cfg.Paddle.Width = 140
		cfg.Ball.LaunchVX *= 0.8
		cfg.Ball.LaunchVY *= 0.8
	case DifficultyHard:
		cfg.Gameplay.Lives = 1
		cfg.Paddle.Width = 80
		cfg.Ball.LaunchVX *= 1.25
		cfg.Ball.LaunchVY *= 1.25
	}
}
