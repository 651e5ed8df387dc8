package core

// Command is one of the two inputs the simulation understands.
// Device events (keys, pointer) are translated into commands by the
// platform layer and queued until the next tick.
type Command uint8

const (
	CommandNone       Command = iota
	CommandActivate           // key down / pointer down: start, restart, jump, hold thrust
	CommandDeactivate         // key up / pointer up / pointer leave: release thrust
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandActivate:
		return "Activate"
	case CommandDeactivate:
		return "Deactivate"
	default:
		return "Unknown"
	}
}

// InputFrame holds the commands that arrived between two ticks, in arrival order.
// Order matters: activate followed by deactivate is a tap, the reverse is a new hold.
type InputFrame struct {
	Commands []Command
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Commands: make([]Command, 0, 4)}
}

// Push appends a command to the frame. CommandNone is dropped.
func (f *InputFrame) Push(c Command) {
	if c == CommandNone {
		return
	}
	f.Commands = append(f.Commands, c)
}

// Clear resets the frame for the next tick, keeping its capacity.
func (f *InputFrame) Clear() {
	f.Commands = f.Commands[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Commands: make([]Command, len(f.Commands))}
	copy(clone.Commands, f.Commands)
	return clone
}
