package game

import "slices"

// State is the game state read model. Only Engine mutates it; accessors
// return copies so a renderer can hold on to them between ticks.
type State struct {
	score      int
	lives      int
	paddle     Paddle
	balls      []Ball
	bricks     *BrickField
	powerUps   []PowerUp
	playing    bool
	won        bool
	highScores []int
	tick       uint64
}

// Score returns the current score.
func (s *State) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *State) Lives() int { return s.lives }

// Paddle returns the paddle.
func (s *State) Paddle() Paddle { return s.paddle }

// Balls returns the balls in play.
func (s *State) Balls() []Ball { return slices.Clone(s.balls) }

// Bricks returns the surviving bricks in field order.
func (s *State) Bricks() []Brick { return s.bricks.Bricks() }

// BricksLeft returns the number of surviving bricks.
func (s *State) BricksLeft() int { return s.bricks.Len() }

// PowerUps returns the falling power-ups.
func (s *State) PowerUps() []PowerUp { return slices.Clone(s.powerUps) }

// Playing reports whether the simulation is running.
func (s *State) Playing() bool { return s.playing }

// Won reports whether the brick field was cleared.
func (s *State) Won() bool { return s.won }

// GameOver reports whether the last life was lost.
func (s *State) GameOver() bool { return !s.playing && s.lives == 0 }

// HighScores returns the recorded scores in insertion order. It always holds
// at least the initial zero.
func (s *State) HighScores() []int { return slices.Clone(s.highScores) }

// BestScore returns the highest recorded score.
func (s *State) BestScore() int { return slices.Max(s.highScores) }

// Tick returns the number of ticks simulated since the last restart.
func (s *State) Tick() uint64 { return s.tick }

// recordScore appends the current score to the high score list.
// When unique is set the score is skipped if already present.
func (s *State) recordScore(unique bool) {
	if unique && slices.Contains(s.highScores, s.score) {
		return
	}
	s.highScores = append(s.highScores, s.score)
}
