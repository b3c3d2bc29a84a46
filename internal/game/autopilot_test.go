package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutopilotCommand(t *testing.T) {
	falling := func(cx float64) Ball {
		return Ball{X: cx - 7, Y: 300, VX: 0, VY: 400, Radius: 7}
	}

	tests := []struct {
		name     string
		balls    []Ball
		powerUps []PowerUp
		expected Command
	}{
		{"aimed ball needs no move", []Ball{falling(375)}, nil, CommandNone},
		{"ball far right", []Ball{falling(600)}, nil, CommandRight},
		{"ball far left", []Ball{falling(100)}, nil, CommandLeft},
		{"lowest falling ball wins", []Ball{falling(100), {X: 593, Y: 450, VY: 400, Radius: 7}}, nil, CommandRight},
		{
			"rising ball chases power-up",
			[]Ball{{X: 343, Y: 300, VY: -400, Radius: 7}},
			[]PowerUp{{X: 500, Y: 300, Size: 20, Type: PowerUpLongerPaddle}},
			CommandRight,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			stage(e, []Brick{farBrick}, tc.balls...)
			e.state.powerUps = tc.powerUps

			got := Autopilot{}.Command(e.State(), e.cfg.Paddle.Step)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestAutopilotIdle(t *testing.T) {
	e := newTestEngine(t)
	stage(e, []Brick{farBrick}, Ball{X: 593, Y: 300, VY: 400, Radius: 7})

	e.state.tick = 1
	assert.Equal(t, CommandNone, Autopilot{Every: 2}.Command(e.State(), 20), "skipped tick")
	assert.Equal(t, CommandRight, Autopilot{Every: 1}.Command(e.State(), 20))

	e.state.playing = false
	assert.Equal(t, CommandNone, Autopilot{}.Command(e.State(), 20), "not playing")
}
