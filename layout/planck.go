package layout

import (
	kc "github.com/Alia5/planckmap/keycode"
)

const (
	PlanckRows = 4
	PlanckCols = 12
)

const _______ = kc.Transparent

// The key right of Ctrl on the base layer is a blank. A transparent entry
// there would fall through to nothing, so it is stored as KC_NO.
var planckLayers = [][][]kc.Keycode{
	// Qwerty
	{
		{kc.Escape, kc.Q, kc.W, kc.E, kc.R, kc.T, kc.Y, kc.U, kc.I, kc.O, kc.P, kc.Backspace},
		{kc.Tab, kc.A, kc.S, kc.D, kc.F, kc.G, kc.H, kc.J, kc.K, kc.L, kc.Semicolon, kc.Quote},
		{kc.LeftShift, kc.Z, kc.X, kc.C, kc.V, kc.B, kc.N, kc.M, kc.Comma, kc.Dot, kc.Slash, kc.Enter},
		{kc.LeftCtrl, kc.No, kc.LeftGUI, kc.LeftAlt, kc.Lower, kc.Space, kc.Space, kc.Raise, kc.Mute, kc.MediaPrevious, kc.MediaPlay, kc.MediaNext},
	},
	// Lower
	{
		{kc.Grave, kc.N1, kc.N2, kc.N3, kc.N4, kc.N5, kc.N6, kc.N7, kc.N8, kc.N9, kc.N0, kc.Backspace},
		{_______, _______, _______, _______, _______, _______, _______, kc.Minus, kc.Equal, kc.LeftBrace, kc.RightBrace, kc.Backslash},
		{kc.LeftShift, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______},
		{kc.LeftCtrl, _______, _______, kc.LeftAlt, _______, kc.Space, kc.Space, _______, kc.Left, kc.Up, kc.Down, kc.Right},
	},
	// Raise
	{
		{kc.F1, kc.F2, kc.F3, kc.F4, kc.F5, kc.F6, kc.F7, kc.F8, kc.F9, kc.F10, kc.F11, kc.F12},
		{_______, _______, _______, kc.End, _______, _______, kc.Home, _______, kc.Insert, _______, kc.PrintScreen, _______},
		{kc.LeftShift, _______, _______, kc.Delete, _______, _______, _______, _______, _______, kc.ScrollLock, _______, _______},
		{kc.LeftCtrl, _______, _______, kc.LeftAlt, _______, _______, _______, _______, kc.Left, kc.Up, kc.Down, kc.Right},
	},
	// Adjust (Lower + Raise)
	{
		{kc.Qwerty, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______, kc.Reset},
		{_______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______},
		{_______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______},
		{kc.AudioOn, kc.AudioOff, _______, _______, _______, _______, _______, _______, kc.VoiceInc, kc.VoiceDec, kc.MusicOn, kc.MusicOff},
	},
}

// Planck returns the built-in four-layer Planck layout.
func Planck() *Table {
	t, err := New(PlanckRows, PlanckCols, nil, planckLayers)
	if err != nil {
		panic(err)
	}
	return t
}
