package layer

import (
	"log/slog"

	"github.com/Alia5/planckmap/keycode"
)

// Persister stores the default layer across restarts.
type Persister interface {
	SetDefaultLayer(l Layer) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(l Layer) error

func (f PersisterFunc) SetDefaultLayer(l Layer) error { return f(l) }

// Machine translates custom keycode events into layer stack changes.
type Machine struct {
	state   *State
	persist Persister
	logger  *slog.Logger
}

// NewMachine returns a Machine mutating state. p may be nil when the default
// layer does not need to survive a restart.
func NewMachine(state *State, p Persister, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{state: state, persist: p, logger: logger}
}

// State returns the layer stack the machine drives.
func (m *Machine) State() *State { return m.state }

// Handle processes a press or release of kc. It returns false when the event
// was consumed and true when the caller should continue with its own
// processing.
func (m *Machine) Handle(kc keycode.Keycode, pressed bool) bool {
	switch kc {
	case keycode.Qwerty:
		if pressed {
			m.logger.Info("mode just switched to qwerty")
			m.setPersistentDefault(Qwerty)
		}
		return false
	case keycode.Lower:
		m.momentary(Lower, pressed)
		return false
	case keycode.Raise:
		m.momentary(Raise, pressed)
		return false
	}
	return true
}

func (m *Machine) momentary(l Layer, pressed bool) {
	m.state.SetTri(l, pressed, Lower, Raise, Adjust)
	m.logger.Debug("layer changed", "layer", l, "pressed", pressed, "stack", m.state.Snapshot())
}

// UpdateTri re-derives Adjust from Lower and Raise.
func (m *Machine) UpdateTri() {
	m.state.UpdateTri(Lower, Raise, Adjust)
}

func (m *Machine) setPersistentDefault(l Layer) {
	m.state.SetDefault(l)
	if m.persist == nil {
		return
	}
	if err := m.persist.SetDefaultLayer(l); err != nil {
		m.logger.Warn("failed to persist default layer", "layer", l, "error", err)
	}
}

// Lower reports whether the Lower layer is held.
func (m *Machine) Lower() bool { return m.state.IsOn(Lower) }

// Raise reports whether the Raise layer is held.
func (m *Machine) Raise() bool { return m.state.IsOn(Raise) }

// Adjust reports whether the Adjust layer is active.
func (m *Machine) Adjust() bool { return m.state.IsOn(Adjust) }
