// Package engine routes matrix events through the layout table to the layer
// state machine and the HID keyboard, standing in for the firmware's
// keycode dispatch loop.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Alia5/planckmap/device/keyboard"
	plog "github.com/Alia5/planckmap/internal/log"
	"github.com/Alia5/planckmap/keycode"
	"github.com/Alia5/planckmap/layer"
	"github.com/Alia5/planckmap/layout"
)

// ErrOutOfRange is returned for events outside the matrix.
var ErrOutOfRange = layout.ErrOutOfRange

// Event is one debounced key transition.
type Event struct {
	Pos     layout.Position
	Pressed bool
}

// Hooks are the platform actions behind reserved keycodes.
type Hooks struct {
	// Reset is called after a RESET key press, once every held key has
	// been released.
	Reset func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithHooks installs platform hooks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine processes events one at a time, in the order they are delivered.
type Engine struct {
	mu      sync.Mutex
	table   *layout.Table
	machine *layer.Machine
	kb      *keyboard.Keyboard
	held    map[layout.Position]keycode.Keycode
	hooks   Hooks
	logger  *slog.Logger
}

// New returns an Engine for a validated table.
func New(table *layout.Table, machine *layer.Machine, kb *keyboard.Keyboard, opts ...Option) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	e := &Engine{
		table:   table,
		machine: machine,
		kb:      kb,
		held:    make(map[layout.Position]keycode.Keycode),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Process handles a single event and returns the keycode it acted on.
// Releases act on the keycode chosen when the key went down, so a key
// pressed on Lower is released as the same keycode after Lower is gone.
func (e *Engine) Process(ev Event) (keycode.Keycode, error) {
	e.mu.Lock()
	if !e.table.Contains(ev.Pos) {
		e.mu.Unlock()
		return keycode.No, fmt.Errorf("%w: %s in %dx%d matrix", ErrOutOfRange, ev.Pos, e.table.Rows(), e.table.Cols())
	}

	var kc keycode.Keycode
	if ev.Pressed {
		if prev, ok := e.held[ev.Pos]; ok {
			e.mu.Unlock()
			e.logger.Debug("ignoring repeated press", "pos", ev.Pos, "keycode", prev)
			return prev, nil
		}
		kc = e.table.Resolve(ev.Pos, e.machine.State().Snapshot())
		e.held[ev.Pos] = kc
	} else {
		held, ok := e.held[ev.Pos]
		if !ok {
			e.mu.Unlock()
			e.logger.Debug("ignoring release of key that is not down", "pos", ev.Pos)
			return keycode.No, nil
		}
		kc = held
		delete(e.held, ev.Pos)
	}

	e.logger.Log(context.Background(), plog.LevelTrace, "key event", "pos", ev.Pos, "pressed", ev.Pressed, "keycode", kc)
	reset := e.dispatch(kc, ev.Pressed)
	e.mu.Unlock()

	if reset && e.hooks.Reset != nil {
		e.hooks.Reset()
	}
	return kc, nil
}

// dispatch mirrors the firmware: the keymap handler sees every keycode first
// and only unhandled ones get the default processing. It reports whether a
// reset was requested.
func (e *Engine) dispatch(kc keycode.Keycode, pressed bool) bool {
	if !e.machine.Handle(kc, pressed) {
		return false
	}

	switch kc.Kind() {
	case keycode.KindBasic:
		if pressed {
			e.kb.Press(uint8(kc.Usage()))
		} else {
			e.kb.Release(uint8(kc.Usage()))
		}
	case keycode.KindConsumer:
		if pressed {
			e.kb.PressConsumer(kc.Usage())
		} else {
			e.kb.ReleaseConsumer(kc.Usage())
		}
	case keycode.KindReserved:
		return e.reserved(kc, pressed)
	case keycode.KindCustom:
		e.logger.Warn("custom keycode has no handler", "keycode", kc)
	case keycode.KindNone, keycode.KindTransparent:
	}
	return false
}

func (e *Engine) reserved(kc keycode.Keycode, pressed bool) bool {
	if !pressed {
		return false
	}
	switch kc {
	case keycode.Reset:
		e.logger.Info("reset requested, releasing all keys")
		e.releaseAll()
		return true
	case keycode.AudioOn, keycode.AudioOff, keycode.MusicOn, keycode.MusicOff, keycode.VoiceInc, keycode.VoiceDec:
		e.logger.Info("audio keycode ignored, no audio output", "keycode", kc)
	default:
		e.logger.Warn("unsupported reserved keycode", "keycode", kc)
	}
	return false
}

func (e *Engine) releaseAll() {
	clear(e.held)
	e.machine.State().Clear()
	e.kb.ReleaseAll()
}

// ReleaseAll drops every held key and momentary layer.
func (e *Engine) ReleaseAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseAll()
}

// Reload swaps the layout table. Keys that are down keep the keycode they
// were pressed with.
func (e *Engine) Reload(table *layout.Table) error {
	if err := table.Validate(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if table.Rows() != e.table.Rows() || table.Cols() != e.table.Cols() {
		return fmt.Errorf("%w: matrix changed from %dx%d to %dx%d", layout.ErrShape,
			e.table.Rows(), e.table.Cols(), table.Rows(), table.Cols())
	}
	e.table = table
	return nil
}

// Table returns the active layout table.
func (e *Engine) Table() *layout.Table {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table
}

// Stack returns the current layer stack.
func (e *Engine) Stack() layer.Stack {
	return e.machine.State().Snapshot()
}

// Held returns the positions currently down, in row-major order.
func (e *Engine) Held() []layout.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]layout.Position, 0, len(e.held))
	for p := range e.held {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
