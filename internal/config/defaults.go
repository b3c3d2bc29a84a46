package config

import (
	_ "embed"
)

//go:embed defaults/breaker.yaml
var defaultYAML []byte

// DefaultLevel is the layout used when no level is configured.
const DefaultLevel = "classic"

// Default returns the hardcoded configuration. It matches the embedded
// defaults/breaker.yaml and is the last fallback of Load.
func Default() Config {
	return Config{
		Field: Field{
			Width:  700,
			Height: 600,
		},
		Paddle: Paddle{
			Width:        100,
			Height:       10,
			BottomOffset: 50,
			Step:         20,
			Margin:       10,
		},
		Ball: Ball{
			Radius:     7,
			LaunchVX:   -400,
			LaunchVY:   -500,
			PaddleGain: 4,
		},
		Bricks: Bricks{
			Width:   40,
			Height:  20,
			Spacing: 10,
			OriginX: 20,
			OriginY: 50,
			Points:  5,
		},
		PowerUps: PowerUps{
			Size:         20,
			FallStep:     2,
			PaddleGrowth: 30,
			BallGrowth:   3,
			ExtraBalls:   3,
			ExtraVX:      200,
			ExtraVY:      -300,
			SpeedFactor:  2,
		},
		Gameplay: Gameplay{
			Lives: 1,
		},
		Level: DefaultLevel,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
