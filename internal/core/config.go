package core

import "time"

// RuntimeConfig contains configuration passed to the driver at startup.
type RuntimeConfig struct {
	ScreenW   int           // Screen width in characters
	ScreenH   int           // Screen height in characters
	FrameRate int           // Presentation frames per second
	Step      time.Duration // Fixed simulation step
	Seed      int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
		Step:      5 * time.Millisecond,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// StepSeconds returns the simulation step as the dt handed to the engine.
func (c RuntimeConfig) StepSeconds() float64 {
	return c.Step.Seconds()
}
