package game

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/registry"
)

// Engine owns the game state and advances it one tick at a time. It is not
// safe for concurrent use; a single driver goroutine calls Tick and Restart
// and reads State between calls.
type Engine struct {
	cfg    config.Config
	layout config.Level
	rng    *SimpleRNG
	seed   int64
	logger *log.Logger

	state State
	lost  []bool // Per-ball removal marks, reused across ticks
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for state transitions and applied effects.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLayout overrides both the inline layout and the named level of the
// configuration.
func WithLayout(l config.Level) Option {
	return func(e *Engine) {
		e.layout = l
	}
}

// New creates an engine in the initial Playing state. The layout comes from
// cfg.Layout when set, otherwise from the registry entry named by cfg.Level.
func New(cfg config.Config, seed int64, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		rng:    NewSimpleRNG(seed),
		seed:   seed,
		logger: log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(e)
	}

	switch {
	case e.layout.Rows() > 0: // WithLayout
	case cfg.Layout != nil:
		e.layout = *cfg.Layout
	default:
		id := cfg.Level
		if id == "" {
			id = config.DefaultLevel
		}
		l, err := registry.Create(id)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		e.layout = l
	}
	if err := e.layout.Validate(); err != nil {
		return nil, err
	}

	e.state.highScores = []int{0}
	e.reset()
	// The very first ball starts mid-field rather than on the paddle.
	e.state.balls[0].X = float64(cfg.Field.Width) / 2
	e.state.balls[0].Y = float64(cfg.Field.Height) / 2

	e.logger.Debug("engine ready", "seed", seed, "layout", e.layout.Name, "bricks", e.state.bricks.Len(), "lives", e.state.lives)
	return e, nil
}

// State returns the read model. The pointer stays valid across restarts.
func (e *Engine) State() *State {
	return &e.state
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Layout returns the layout the brick field is generated from.
func (e *Engine) Layout() config.Level {
	return e.layout
}

// Seed returns the seed the engine was created with.
func (e *Engine) Seed() int64 {
	return e.seed
}

// reset puts the state into a fresh Playing round. High scores are kept.
func (e *Engine) reset() {
	s := &e.state
	s.score = 0
	s.lives = e.cfg.Gameplay.Lives
	s.paddle = Paddle{
		X:      (e.cfg.Field.Width - e.cfg.Paddle.Width) / 2,
		Y:      e.cfg.Field.Height - e.cfg.Paddle.BottomOffset,
		Width:  e.cfg.Paddle.Width,
		Height: e.cfg.Paddle.Height,
	}
	s.bricks = NewBrickField(e.layout, e.cfg.Bricks, e.rng)
	s.balls = s.balls[:0]
	s.powerUps = s.powerUps[:0]
	s.playing = true
	s.won = false
	s.tick = 0
	e.spawnBall(e.cfg.Ball.LaunchVX, e.cfg.Ball.LaunchVY)
}

// Restart starts a new round after a win or game over. It is a no-op while
// playing and reports whether it restarted.
func (e *Engine) Restart() bool {
	if e.state.playing {
		return false
	}
	finished := e.state.score
	e.state.recordScore(true)
	e.reset()
	e.logger.Info("restart", "previous_score", finished, "best", e.state.BestScore())
	return true
}

// spawnBall adds a ball resting just above the paddle center.
func (e *Engine) spawnBall(vx, vy float64) {
	r := e.cfg.Ball.Radius
	p := e.state.paddle
	e.state.balls = append(e.state.balls, Ball{
		X:      p.CenterX() - r,
		Y:      float64(p.Y) - 2*r - 1,
		VX:     vx,
		VY:     vy,
		Radius: r,
	})
}

// Tick advances the simulation by dt seconds with the given paddle command
// and returns the events in the order they happened. It does nothing and
// returns nil when the game is not playing.
func (e *Engine) Tick(dt float64, cmd Command) []Event {
	s := &e.state
	if !s.playing {
		return nil
	}
	s.tick++

	var events []Event
	emit := func(ev Event) {
		ev.Tick = s.tick
		ev.Score = s.score
		ev.Lives = s.lives
		events = append(events, ev)
	}

	e.movePaddle(cmd)
	e.updateBalls(dt, emit)

	if s.bricks.Empty() {
		s.playing = false
		s.won = true
		s.recordScore(false)
		emit(Event{Type: EventGameWon})
		e.logger.Info("game won", "score", s.score, "ticks", s.tick)
	}

	e.updatePowerUps(emit)
	return events
}

func (e *Engine) movePaddle(cmd Command) {
	p := &e.state.paddle
	switch cmd {
	case CommandLeft:
		p.X -= e.cfg.Paddle.Step
	case CommandRight:
		p.X += e.cfg.Paddle.Step
	case CommandNone:
		return
	}
	p.clamp(e.cfg.Field.Width, e.cfg.Paddle.Margin)
}

// updateBalls moves every ball and resolves its collisions. Lost balls are
// marked and compacted once all balls have been processed.
func (e *Engine) updateBalls(dt float64, emit func(Event)) {
	s := &e.state
	fieldW := float64(e.cfg.Field.Width)
	fieldH := float64(e.cfg.Field.Height)

	e.lost = e.lost[:0]
	for i := range s.balls {
		b := &s.balls[i]
		b.Move(dt)

		// Side walls
		if b.X < 0 {
			b.X = 0
			b.BounceX()
			emit(Event{Type: EventWallHit})
		} else if b.X+b.Size() > fieldW {
			b.X = fieldW - b.Size()
			b.BounceX()
			emit(Event{Type: EventWallHit})
		}

		// Top wall
		if b.Y < 0 {
			b.Y = 0
			b.BounceY()
			emit(Event{Type: EventWallHit})
		}

		// Paddle: angle follows the hit offset and the ball always leaves upward.
		if b.Bounds().Intersects(s.paddle.Bounds()) {
			b.VX = (b.CenterX() - s.paddle.CenterX()) * e.cfg.Ball.PaddleGain
			b.VY = -math.Abs(b.VY)
			b.Y = float64(s.paddle.Y) - b.Size()
			emit(Event{Type: EventPaddleHit})
		}

		// Bricks: first overlap in field order only.
		if brick, ok := s.bricks.hit(b.Bounds()); ok {
			s.score += e.cfg.Bricks.Points
			b.BounceY()
			emit(Event{Type: EventBrickDestroyed, Brick: brick})
			if brick.Special {
				pu := e.spawnPowerUp(brick)
				emit(Event{Type: EventSpecialBrickDestroyed, Brick: brick, PowerUp: pu.Type})
			} else {
				emit(Event{Type: EventBrickHit, Brick: brick})
			}
		}

		lost := b.Y > fieldH-b.Size()
		if lost {
			emit(Event{Type: EventBallLost})
		}
		e.lost = append(e.lost, lost)
	}

	n := 0
	for i, b := range s.balls {
		if !e.lost[i] {
			s.balls[n] = b
			n++
		}
	}
	if n == len(s.balls) {
		return
	}
	s.balls = s.balls[:n]
	if n > 0 {
		return
	}

	if s.lives > 1 {
		s.lives--
		e.spawnBall(e.cfg.Ball.LaunchVX, e.cfg.Ball.LaunchVY)
		emit(Event{Type: EventLifeLost})
		e.logger.Debug("life lost", "lives", s.lives, "tick", s.tick)
		return
	}

	s.lives = 0
	s.playing = false
	s.recordScore(true)
	emit(Event{Type: EventGameOver})
	e.logger.Info("game over", "score", s.score, "ticks", s.tick)
}

// spawnPowerUp drops a power-up of a random type below the brick center.
func (e *Engine) spawnPowerUp(b Brick) PowerUp {
	size := e.cfg.PowerUps.Size
	pu := PowerUp{
		X:    b.X + b.W/2 - size/2,
		Y:    b.Y + b.H,
		Size: size,
		Type: PowerUpType(e.rng.Intn(int(powerUpTypeCount))),
	}
	e.state.powerUps = append(e.state.powerUps, pu)
	return pu
}

// updatePowerUps moves falling power-ups, applies the ones that reach the
// paddle and drops the ones that leave the field.
func (e *Engine) updatePowerUps(emit func(Event)) {
	s := &e.state
	paddle := s.paddle.Bounds()

	kept := s.powerUps[:0]
	for _, pu := range s.powerUps {
		pu.Fall(e.cfg.PowerUps.FallStep)
		switch {
		case pu.Bounds().Intersects(paddle):
			e.applyEffect(pu.Type)
			emit(Event{Type: EventPowerUpCollected, PowerUp: pu.Type})
		case pu.Y > e.cfg.Field.Height:
		default:
			kept = append(kept, pu)
		}
	}
	s.powerUps = kept
}

// applyEffect applies a power-up to the whole game. Effects are permanent
// until the next restart.
func (e *Engine) applyEffect(t PowerUpType) {
	s := &e.state
	pc := e.cfg.PowerUps

	switch t {
	case PowerUpBiggerBall:
		for i := range s.balls {
			s.balls[i].Radius *= pc.BallGrowth
		}
	case PowerUpLongerPaddle:
		maxW := e.cfg.Field.Width - 2*e.cfg.Paddle.Margin
		s.paddle.Width = min(s.paddle.Width+pc.PaddleGrowth, maxW)
		s.paddle.clamp(e.cfg.Field.Width, e.cfg.Paddle.Margin)
	case PowerUpManyBalls:
		for range pc.ExtraBalls {
			vx := pc.ExtraVX
			if e.rng.Bool() {
				vx = -vx
			}
			e.spawnBall(vx, pc.ExtraVY)
		}
	case PowerUpDoubleSpeed:
		for i := range s.balls {
			s.balls[i].VX *= pc.SpeedFactor
			s.balls[i].VY *= pc.SpeedFactor
		}
	default:
		panic(fmt.Sprintf("game: unknown power-up type %d", t))
	}

	e.logger.Debug("power-up applied", "type", t, "balls", len(s.balls), "paddle_width", s.paddle.Width)
}
