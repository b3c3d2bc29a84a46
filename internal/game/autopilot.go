package game

// Autopilot is a simple paddle controller for headless runs. It follows the
// ball closest to the paddle and hits it off-center so the rebound heads
// toward the lowest surviving brick.
type Autopilot struct {
	// Deadzone is the distance between paddle and target centers that is
	// left uncorrected. Zero means half a paddle step.
	Deadzone float64
	// Every makes the autopilot act only on every Nth tick, which lets
	// balls slip past. Zero or one acts on every tick.
	Every uint64
}

// Command returns the paddle command for the next tick.
func (a Autopilot) Command(s *State, step int) Command {
	if !s.playing {
		return CommandNone
	}
	if a.Every > 1 && s.tick%a.Every != 0 {
		return CommandNone
	}

	target, ok := a.target(s)
	if !ok {
		return CommandNone
	}

	dead := a.Deadzone
	if dead == 0 {
		dead = float64(step) / 2
	}
	diff := target - s.paddle.CenterX()
	switch {
	case diff > dead:
		return CommandRight
	case diff < -dead:
		return CommandLeft
	default:
		return CommandNone
	}
}

// target returns the x coordinate the paddle center should move to.
func (a Autopilot) target(s *State) (float64, bool) {
	var ball *Ball
	for i := range s.balls {
		b := &s.balls[i]
		if ball == nil || (b.VY > 0 && (ball.VY <= 0 || b.Y > ball.Y)) {
			ball = b
		}
	}

	if ball == nil || ball.VY <= 0 {
		// Nothing is coming down; collect power-ups while waiting.
		var best *PowerUp
		for i := range s.powerUps {
			p := &s.powerUps[i]
			if p.Y < s.paddle.Y && (best == nil || p.Y > best.Y) {
				best = p
			}
		}
		if best != nil {
			return float64(best.X) + float64(best.Size)/2, true
		}
		if ball == nil {
			return 0, false
		}
	}

	cx := ball.CenterX()
	aim := float64(s.paddle.Width) / 4
	if lowest, ok := lowestBrick(s.bricks.bricks); ok {
		bx, _ := lowest.Bounds().Center()
		if bx < cx {
			aim = -aim
		}
	}
	// A ball right of the paddle center is sent right, so put the paddle
	// on the opposite side of the aim direction.
	return cx - aim, true
}

func lowestBrick(bricks []Brick) (Brick, bool) {
	if len(bricks) == 0 {
		return Brick{}, false
	}
	low := bricks[0]
	for _, b := range bricks[1:] {
		if b.Y > low.Y {
			low = b
		}
	}
	return low, true
}
