package game

import "github.com/vovakirdan/brick-breaker/internal/core"

// Command is a discrete paddle command for one tick.
type Command int

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandLeft:
		return "Left"
	case CommandRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// CommandFrom maps an input frame to a paddle command. Pressing both
// directions at once cancels out.
func CommandFrom(in core.InputFrame) Command {
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case left && !right:
		return CommandLeft
	case right && !left:
		return CommandRight
	default:
		return CommandNone
	}
}
