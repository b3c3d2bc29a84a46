package game

import (
	"github.com/charmbracelet/log"
)

// EventType identifies what happened during a tick.
type EventType int

const (
	EventWallHit EventType = iota
	EventPaddleHit
	EventBrickDestroyed
	EventBrickHit
	EventSpecialBrickDestroyed
	EventPowerUpCollected
	EventBallLost
	EventLifeLost
	EventGameOver
	EventGameWon
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventWallHit:
		return "WallHit"
	case EventPaddleHit:
		return "PaddleHit"
	case EventBrickDestroyed:
		return "BrickDestroyed"
	case EventBrickHit:
		return "BrickHit"
	case EventSpecialBrickDestroyed:
		return "SpecialBrickDestroyed"
	case EventPowerUpCollected:
		return "PowerUpCollected"
	case EventBallLost:
		return "BallLost"
	case EventLifeLost:
		return "LifeLost"
	case EventGameOver:
		return "GameOver"
	case EventGameWon:
		return "GameWon"
	default:
		return "Unknown"
	}
}

// Event is one discrete occurrence emitted by Engine.Tick. Only the fields
// relevant to Type are set.
type Event struct {
	Type    EventType
	Tick    uint64
	Brick   Brick       // BrickDestroyed, BrickHit, SpecialBrickDestroyed
	PowerUp PowerUpType // SpecialBrickDestroyed (spawned), PowerUpCollected
	Score   int         // Score after the event
	Lives   int         // Lives after the event
}

// EventSink consumes engine events. Presentation and audio layers implement
// it; the engine never calls sinks itself.
type EventSink interface {
	HandleEvent(Event)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(Event)

// HandleEvent calls f(ev).
func (f EventSinkFunc) HandleEvent(ev Event) {
	f(ev)
}

// Dispatch delivers events to every sink, preserving event order.
func Dispatch(events []Event, sinks ...EventSink) {
	for _, ev := range events {
		for _, s := range sinks {
			s.HandleEvent(ev)
		}
	}
}

// LogSink writes each event to a logger at debug level. Wall and paddle hits
// are frequent, so they are skipped unless Verbose is set.
type LogSink struct {
	Logger  *log.Logger
	Verbose bool
}

// HandleEvent logs ev.
func (s LogSink) HandleEvent(ev Event) {
	if s.Logger == nil {
		return
	}
	switch ev.Type {
	case EventWallHit, EventPaddleHit:
		if s.Verbose {
			s.Logger.Debug(ev.Type.String(), "tick", ev.Tick)
		}
	case EventBrickDestroyed, EventBrickHit:
		s.Logger.Debug(ev.Type.String(), "tick", ev.Tick, "x", ev.Brick.X, "y", ev.Brick.Y, "score", ev.Score)
	case EventSpecialBrickDestroyed, EventPowerUpCollected:
		s.Logger.Debug(ev.Type.String(), "tick", ev.Tick, "powerup", ev.PowerUp)
	default:
		s.Logger.Debug(ev.Type.String(), "tick", ev.Tick, "score", ev.Score, "lives", ev.Lives)
	}
}
