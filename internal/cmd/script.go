package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Alia5/planckmap/layout"
)

// ErrScript marks a line that is not a valid event.
var ErrScript = errors.New("invalid event")

// Action is what a script line asks for.
type Action int

const (
	ActionNone Action = iota
	ActionDown
	ActionUp
	ActionTap
	ActionState
	ActionLEDs
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionTap:
		return "tap"
	case ActionState:
		return "state"
	case ActionLEDs:
		return "leds"
	default:
		return "none"
	}
}

// Step is one parsed script line.
type Step struct {
	Action Action
	Pos    layout.Position
	// LEDs is the host LED bitmask for ActionLEDs.
	LEDs uint8
}

// ParseStep parses "down R C", "up R C", "tap R C", "state" or "leds MASK".
// Blank lines and lines starting with # yield ActionNone.
func ParseStep(line string) (Step, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Step{}, nil
	}

	var s Step
	switch strings.ToLower(fields[0]) {
	case "down", "d":
		s.Action = ActionDown
	case "up", "u":
		s.Action = ActionUp
	case "tap", "t":
		s.Action = ActionTap
	case "state", "s":
		if len(fields) != 1 {
			return Step{}, fmt.Errorf("%w: state takes no arguments", ErrScript)
		}
		return Step{Action: ActionState}, nil
	case "leds":
		if len(fields) != 2 {
			return Step{}, fmt.Errorf("%w: leds needs a bitmask", ErrScript)
		}
		v, err := strconv.ParseUint(fields[1], 0, 8)
		if err != nil {
			return Step{}, fmt.Errorf("%w: led mask %q", ErrScript, fields[1])
		}
		return Step{Action: ActionLEDs, LEDs: uint8(v)}, nil
	default:
		return Step{}, fmt.Errorf("%w: unknown action %q", ErrScript, fields[0])
	}

	if len(fields) != 3 {
		return Step{}, fmt.Errorf("%w: %s needs a row and a column", ErrScript, s.Action)
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return Step{}, fmt.Errorf("%w: row %q", ErrScript, fields[1])
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil {
		return Step{}, fmt.Errorf("%w: column %q", ErrScript, fields[2])
	}
	s.Pos = layout.Position{Row: row, Col: col}
	return s, nil
}
