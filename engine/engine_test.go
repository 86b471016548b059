package engine_test

import (
	"testing"

	"github.com/Alia5/planckmap/device"
	"github.com/Alia5/planckmap/device/keyboard"
	"github.com/Alia5/planckmap/engine"
	"github.com/Alia5/planckmap/internal/eeprom"
	plog "github.com/Alia5/planckmap/internal/log"
	"github.com/Alia5/planckmap/keycode"
	"github.com/Alia5/planckmap/layer"
	"github.com/Alia5/planckmap/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	posLower  = layout.Position{Row: 3, Col: 4}
	posRaise  = layout.Position{Row: 3, Col: 7}
	posTopL   = layout.Position{Row: 0, Col: 0}
	posOne    = layout.Position{Row: 0, Col: 1}
	posTopR   = layout.Position{Row: 0, Col: 11}
	posMute   = layout.Position{Row: 3, Col: 8}
	posShift  = layout.Position{Row: 2, Col: 0}
	posBlank  = layout.Position{Row: 3, Col: 1}
	posAudOff = layout.Position{Row: 3, Col: 1}
)

type fixture struct {
	eng     *engine.Engine
	kb      *keyboard.Keyboard
	store   *eeprom.Memory
	reports []device.Report
	resets  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{kb: keyboard.New(), store: eeprom.NewMemory()}
	f.kb.SetReportCallback(func(r device.Report) { f.reports = append(f.reports, r) })

	m := layer.NewMachine(layer.NewState(layer.Base), f.store, plog.Discard())
	eng, err := engine.New(layout.Planck(), m, f.kb,
		engine.WithLogger(plog.Discard()),
		engine.WithHooks(engine.Hooks{Reset: func() { f.resets++ }}),
	)
	require.NoError(t, err)
	f.eng = eng
	return f
}

func (f *fixture) down(t *testing.T, p layout.Position) keycode.Keycode {
	t.Helper()
	kc, err := f.eng.Process(engine.Event{Pos: p, Pressed: true})
	require.NoError(t, err)
	return kc
}

func (f *fixture) up(t *testing.T, p layout.Position) keycode.Keycode {
	t.Helper()
	kc, err := f.eng.Process(engine.Event{Pos: p, Pressed: false})
	require.NoError(t, err)
	return kc
}

func TestEndToEndTriLayer(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, keycode.Lower, f.down(t, posLower))
	st := f.eng.Stack()
	assert.True(t, st.IsOn(layer.Lower))
	assert.False(t, st.IsOn(layer.Adjust))

	assert.Equal(t, keycode.Raise, f.down(t, posRaise))
	st = f.eng.Stack()
	assert.True(t, st.IsOn(layer.Raise))
	assert.True(t, st.IsOn(layer.Adjust))

	assert.Equal(t, keycode.Lower, f.up(t, posLower))
	st = f.eng.Stack()
	assert.False(t, st.IsOn(layer.Lower))
	assert.True(t, st.IsOn(layer.Raise))
	assert.False(t, st.IsOn(layer.Adjust))

	assert.Empty(t, f.reports, "layer keys never reach the host")
}

func TestLayerKeysResolveThroughStack(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, keycode.Q, f.down(t, layout.Position{Row: 0, Col: 1}))
	f.up(t, layout.Position{Row: 0, Col: 1})

	f.down(t, posLower)
	assert.Equal(t, keycode.N1, f.down(t, posOne))
	assert.True(t, f.kb.InputState().IsPressed(keyboard.Key1))
	// Transparent on Lower, falls back to the Base entry.
	assert.Equal(t, keycode.A, f.down(t, layout.Position{Row: 1, Col: 1}))
	f.up(t, layout.Position{Row: 1, Col: 1})
	f.up(t, posOne)
	f.up(t, posLower)

	f.down(t, posRaise)
	assert.Equal(t, keycode.F2, f.down(t, posOne))
	f.up(t, posOne)
	f.up(t, posRaise)

	assert.Empty(t, f.kb.InputState().Pressed())
}

func TestReleaseUsesKeycodeFromPress(t *testing.T) {
	f := newFixture(t)

	f.down(t, posLower)
	assert.Equal(t, keycode.N1, f.down(t, posOne))
	f.up(t, posLower)

	assert.Equal(t, keycode.N1, f.up(t, posOne))
	assert.False(t, f.kb.InputState().IsPressed(keyboard.Key1))
	assert.False(t, f.kb.InputState().IsPressed(keyboard.KeyQ))
}

func TestQwertyFromAdjust(t *testing.T) {
	f := newFixture(t)

	f.down(t, posLower)
	f.down(t, posRaise)
	assert.Equal(t, keycode.Qwerty, f.down(t, posTopL))
	assert.Equal(t, 1, f.store.Writes)
	f.up(t, posTopL)
	assert.Equal(t, 1, f.store.Writes)

	l, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, layer.Base, l)
	assert.Empty(t, f.reports)
}

func TestModifiersAndConsumer(t *testing.T) {
	f := newFixture(t)

	f.down(t, posShift)
	f.down(t, layout.Position{Row: 2, Col: 1})
	st := f.kb.InputState()
	assert.Equal(t, uint8(keyboard.ModLeftShift), st.Modifiers)
	assert.Equal(t, []uint8{keyboard.KeyZ}, st.Pressed())

	f.down(t, posMute)
	assert.Equal(t, uint16(keyboard.ConsumerMute), f.kb.ConsumerState().Usage)
	f.up(t, posMute)
	assert.Zero(t, f.kb.ConsumerState().Usage)

	last := f.reports[len(f.reports)-1]
	assert.Equal(t, device.EndpointConsumer, last.Endpoint)
}

func TestBlankAndAudioKeys(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, keycode.No, f.down(t, posBlank))
	f.up(t, posBlank)
	assert.Empty(t, f.reports)

	f.down(t, posLower)
	f.down(t, posRaise)
	assert.Equal(t, keycode.AudioOff, f.down(t, posAudOff))
	f.up(t, posAudOff)
	assert.Empty(t, f.reports)
}

func TestResetReleasesEverything(t *testing.T) {
	f := newFixture(t)

	f.down(t, posShift)
	f.down(t, posLower)
	f.down(t, posRaise)
	assert.Equal(t, keycode.Reset, f.down(t, posTopR))

	assert.Equal(t, 1, f.resets)
	assert.Empty(t, f.eng.Held())
	assert.Equal(t, layer.Stack{Default: layer.Base}, f.eng.Stack())
	assert.Equal(t, keyboard.InputState{}, f.kb.InputState())

	// Releases of keys dropped by the reset are ignored.
	assert.Equal(t, keycode.No, f.up(t, posTopR))
	assert.Equal(t, keycode.No, f.up(t, posLower))
}

func TestRepeatedPressAndStrayRelease(t *testing.T) {
	f := newFixture(t)

	f.down(t, posLower)
	f.down(t, posLower)
	assert.Equal(t, []layout.Position{posLower}, f.eng.Held())

	assert.Equal(t, keycode.No, f.up(t, posOne))
	f.up(t, posLower)
	assert.False(t, f.eng.Stack().IsOn(layer.Lower))
}

func TestOutOfRange(t *testing.T) {
	f := newFixture(t)
	_, err := f.eng.Process(engine.Event{Pos: layout.Position{Row: 4, Col: 0}, Pressed: true})
	assert.ErrorIs(t, err, engine.ErrOutOfRange)
	_, err = f.eng.Process(engine.Event{Pos: layout.Position{Row: 0, Col: -1}})
	assert.ErrorIs(t, err, layout.ErrOutOfRange)
}

func TestHeldOrder(t *testing.T) {
	f := newFixture(t)
	f.down(t, posRaise)
	f.down(t, posShift)
	f.down(t, posOne)
	assert.Equal(t, []layout.Position{posOne, posShift, posRaise}, f.eng.Held())

	f.eng.ReleaseAll()
	assert.Empty(t, f.eng.Held())
	assert.False(t, f.eng.Stack().IsOn(layer.Raise))
}

func TestNewRejectsInvalidLayout(t *testing.T) {
	bad, err := layout.New(1, 1, nil, [][][]keycode.Keycode{{{keycode.Transparent}}})
	require.NoError(t, err)
	m := layer.NewMachine(layer.NewState(layer.Base), nil, plog.Discard())
	_, err = engine.New(bad, m, keyboard.New())
	assert.ErrorIs(t, err, layout.ErrTransparentBase)
}

func TestReload(t *testing.T) {
	f := newFixture(t)

	f.down(t, posOne)

	grids := make([][][]keycode.Keycode, 1)
	grids[0] = make([][]keycode.Keycode, layout.PlanckRows)
	for r := range grids[0] {
		grids[0][r] = make([]keycode.Keycode, layout.PlanckCols)
		for c := range grids[0][r] {
			grids[0][r][c] = keycode.X
		}
	}
	tbl, err := layout.New(layout.PlanckRows, layout.PlanckCols, nil, grids)
	require.NoError(t, err)
	require.NoError(t, f.eng.Reload(tbl))
	assert.Same(t, tbl, f.eng.Table())

	assert.Equal(t, keycode.Q, f.up(t, posOne))
	assert.Equal(t, keycode.X, f.down(t, posOne))

	small, err := layout.New(1, 1, nil, [][][]keycode.Keycode{{{keycode.A}}})
	require.NoError(t, err)
	assert.ErrorIs(t, f.eng.Reload(small), layout.ErrShape)

	invalid, err := layout.New(1, 1, nil, [][][]keycode.Keycode{{{keycode.Transparent}}})
	require.NoError(t, err)
	assert.ErrorIs(t, f.eng.Reload(invalid), layout.ErrTransparentBase)
}

func TestUnassignedUsageSendsNothing(t *testing.T) {
	grid := [][][]keycode.Keycode{{{keycode.Keycode(0x00F0), keycode.Keycode(0x0003)}}}
	tbl, err := layout.New(1, 2, nil, grid)
	require.NoError(t, err)

	kb := keyboard.New()
	var reports []device.Report
	kb.SetReportCallback(func(r device.Report) { reports = append(reports, r) })
	m := layer.NewMachine(layer.NewState(layer.Base), nil, plog.Discard())
	eng, err := engine.New(tbl, m, kb, engine.WithLogger(plog.Discard()))
	require.NoError(t, err)

	for col := range 2 {
		pos := layout.Position{Row: 0, Col: col}
		_, err := eng.Process(engine.Event{Pos: pos, Pressed: true})
		require.NoError(t, err)
		_, err = eng.Process(engine.Event{Pos: pos})
		require.NoError(t, err)
	}
	assert.Empty(t, reports)
	assert.Equal(t, keyboard.InputState{}, kb.InputState())
}
