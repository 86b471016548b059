package keycode

import (
	"strings"

	"github.com/Alia5/planckmap/device/keyboard"
)

const (
	No          Keycode = 0x0000
	Transparent Keycode = 0x0001
)

// Basic keys.
const (
	A Keycode = keyboard.KeyA + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	N1
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	N9
	N0
)

const (
	Enter       Keycode = keyboard.KeyEnter
	Escape      Keycode = keyboard.KeyEscape
	Backspace   Keycode = keyboard.KeyBackspace
	Tab         Keycode = keyboard.KeyTab
	Space       Keycode = keyboard.KeySpace
	Minus       Keycode = keyboard.KeyMinus
	Equal       Keycode = keyboard.KeyEqual
	LeftBrace   Keycode = keyboard.KeyLeftBrace
	RightBrace  Keycode = keyboard.KeyRightBrace
	Backslash   Keycode = keyboard.KeyBackslash
	Semicolon   Keycode = keyboard.KeySemicolon
	Quote       Keycode = keyboard.KeyApostrophe
	Grave       Keycode = keyboard.KeyGrave
	Comma       Keycode = keyboard.KeyComma
	Dot         Keycode = keyboard.KeyPeriod
	Slash       Keycode = keyboard.KeySlash
	CapsLock    Keycode = keyboard.KeyCapsLock
	PrintScreen Keycode = keyboard.KeyPrintScreen
	ScrollLock  Keycode = keyboard.KeyScrollLock
	Pause       Keycode = keyboard.KeyPause
	Insert      Keycode = keyboard.KeyInsert
	Home        Keycode = keyboard.KeyHome
	PageUp      Keycode = keyboard.KeyPageUp
	Delete      Keycode = keyboard.KeyDelete
	End         Keycode = keyboard.KeyEnd
	PageDown    Keycode = keyboard.KeyPageDown
	Right       Keycode = keyboard.KeyRight
	Left        Keycode = keyboard.KeyLeft
	Down        Keycode = keyboard.KeyDown
	Up          Keycode = keyboard.KeyUp
	NumLock     Keycode = keyboard.KeyNumLock
	Application Keycode = keyboard.KeyApplication

	F1  Keycode = keyboard.KeyF1
	F2  Keycode = keyboard.KeyF2
	F3  Keycode = keyboard.KeyF3
	F4  Keycode = keyboard.KeyF4
	F5  Keycode = keyboard.KeyF5
	F6  Keycode = keyboard.KeyF6
	F7  Keycode = keyboard.KeyF7
	F8  Keycode = keyboard.KeyF8
	F9  Keycode = keyboard.KeyF9
	F10 Keycode = keyboard.KeyF10
	F11 Keycode = keyboard.KeyF11
	F12 Keycode = keyboard.KeyF12

	LeftCtrl   Keycode = keyboard.KeyLeftCtrl
	LeftShift  Keycode = keyboard.KeyLeftShift
	LeftAlt    Keycode = keyboard.KeyLeftAlt
	LeftGUI    Keycode = keyboard.KeyLeftGUI
	RightCtrl  Keycode = keyboard.KeyRightCtrl
	RightShift Keycode = keyboard.KeyRightShift
	RightAlt   Keycode = keyboard.KeyRightAlt
	RightGUI   Keycode = keyboard.KeyRightGUI
)

// Consumer keys.
const (
	Mute          = consumerBase | keyboard.ConsumerMute
	VolumeUp      = consumerBase | keyboard.ConsumerVolumeUp
	VolumeDown    = consumerBase | keyboard.ConsumerVolumeDown
	MediaNext     = consumerBase | keyboard.ConsumerNextTrack
	MediaPrevious = consumerBase | keyboard.ConsumerPreviousTrack
	MediaStop     = consumerBase | keyboard.ConsumerStop
	MediaPlay     = consumerBase | keyboard.ConsumerPlayPause
)

// Platform-reserved action keycodes.
const (
	Reset Keycode = reservedBase + iota
	AudioOn
	AudioOff
	MusicOn
	MusicOff
	VoiceInc
	VoiceDec
)

// Custom keycodes handled by the layer state machine.
const (
	Qwerty Keycode = SafeRange + iota
	Lower
	Raise
)

// names lists every named keycode; the first name is canonical.
var names = []struct {
	code  Keycode
	names []string
}{
	{No, []string{"KC_NO", "XXXXXXX"}},
	{Transparent, []string{"_______", "KC_TRNS", "KC_TRANSPARENT"}},

	{A, []string{"KC_A"}}, {B, []string{"KC_B"}}, {C, []string{"KC_C"}},
	{D, []string{"KC_D"}}, {E, []string{"KC_E"}}, {F, []string{"KC_F"}},
	{G, []string{"KC_G"}}, {H, []string{"KC_H"}}, {I, []string{"KC_I"}},
	{J, []string{"KC_J"}}, {K, []string{"KC_K"}}, {L, []string{"KC_L"}},
	{M, []string{"KC_M"}}, {N, []string{"KC_N"}}, {O, []string{"KC_O"}},
	{P, []string{"KC_P"}}, {Q, []string{"KC_Q"}}, {R, []string{"KC_R"}},
	{S, []string{"KC_S"}}, {T, []string{"KC_T"}}, {U, []string{"KC_U"}},
	{V, []string{"KC_V"}}, {W, []string{"KC_W"}}, {X, []string{"KC_X"}},
	{Y, []string{"KC_Y"}}, {Z, []string{"KC_Z"}},
	{N1, []string{"KC_1"}}, {N2, []string{"KC_2"}}, {N3, []string{"KC_3"}},
	{N4, []string{"KC_4"}}, {N5, []string{"KC_5"}}, {N6, []string{"KC_6"}},
	{N7, []string{"KC_7"}}, {N8, []string{"KC_8"}}, {N9, []string{"KC_9"}},
	{N0, []string{"KC_0"}},

	{Enter, []string{"KC_ENT", "KC_ENTER"}},
	{Escape, []string{"KC_ESC", "KC_ESCAPE"}},
	{Backspace, []string{"KC_BSPC", "KC_BSPACE", "KC_BACKSPACE"}},
	{Tab, []string{"KC_TAB"}},
	{Space, []string{"KC_SPC", "KC_SPACE"}},
	{Minus, []string{"KC_MINS", "KC_MINUS"}},
	{Equal, []string{"KC_EQL", "KC_EQUAL"}},
	{LeftBrace, []string{"KC_LBRC", "KC_LBRACKET"}},
	{RightBrace, []string{"KC_RBRC", "KC_RBRACKET"}},
	{Backslash, []string{"KC_BSLS", "KC_BSLASH", "KC_BACKSLASH"}},
	{Semicolon, []string{"KC_SCLN", "KC_SCOLON", "KC_SEMICOLON"}},
	{Quote, []string{"KC_QUOT", "KC_QUOTE"}},
	{Grave, []string{"KC_GRV", "KC_GRAVE"}},
	{Comma, []string{"KC_COMM", "KC_COMMA"}},
	{Dot, []string{"KC_DOT"}},
	{Slash, []string{"KC_SLSH", "KC_SLASH"}},
	{CapsLock, []string{"KC_CAPS", "KC_CAPSLOCK"}},
	{PrintScreen, []string{"KC_PSCR", "KC_PSCREEN"}},
	{ScrollLock, []string{"KC_SLCK", "KC_SCROLLLOCK"}},
	{Pause, []string{"KC_PAUS", "KC_PAUSE"}},
	{Insert, []string{"KC_INS", "KC_INSERT"}},
	{Home, []string{"KC_HOME"}},
	{PageUp, []string{"KC_PGUP"}},
	{Delete, []string{"KC_DEL", "KC_DELETE"}},
	{End, []string{"KC_END"}},
	{PageDown, []string{"KC_PGDN"}},
	{Right, []string{"KC_RGHT", "KC_RIGHT"}},
	{Left, []string{"KC_LEFT"}},
	{Down, []string{"KC_DOWN"}},
	{Up, []string{"KC_UP"}},
	{NumLock, []string{"KC_NLCK", "KC_NUMLOCK"}},
	{Application, []string{"KC_APP"}},

	{F1, []string{"KC_F1"}}, {F2, []string{"KC_F2"}}, {F3, []string{"KC_F3"}},
	{F4, []string{"KC_F4"}}, {F5, []string{"KC_F5"}}, {F6, []string{"KC_F6"}},
	{F7, []string{"KC_F7"}}, {F8, []string{"KC_F8"}}, {F9, []string{"KC_F9"}},
	{F10, []string{"KC_F10"}}, {F11, []string{"KC_F11"}}, {F12, []string{"KC_F12"}},

	{LeftCtrl, []string{"KC_LCTL", "KC_LCTRL"}},
	{LeftShift, []string{"KC_LSFT", "KC_LSHIFT"}},
	{LeftAlt, []string{"KC_LALT"}},
	{LeftGUI, []string{"KC_LGUI"}},
	{RightCtrl, []string{"KC_RCTL", "KC_RCTRL"}},
	{RightShift, []string{"KC_RSFT", "KC_RSHIFT"}},
	{RightAlt, []string{"KC_RALT"}},
	{RightGUI, []string{"KC_RGUI"}},

	{Mute, []string{"KC_MUTE", "KC_AUDIO_MUTE"}},
	{VolumeUp, []string{"KC_VOLU", "KC_AUDIO_VOL_UP"}},
	{VolumeDown, []string{"KC_VOLD", "KC_AUDIO_VOL_DOWN"}},
	{MediaNext, []string{"KC_MNXT", "KC_MEDIA_NEXT_TRACK"}},
	{MediaPrevious, []string{"KC_MPRV", "KC_MEDIA_PREV_TRACK"}},
	{MediaStop, []string{"KC_MSTP", "KC_MEDIA_STOP"}},
	{MediaPlay, []string{"KC_MPLY", "KC_MEDIA_PLAY_PAUSE"}},

	{Reset, []string{"RESET", "QK_BOOT"}},
	{AudioOn, []string{"AU_ON"}},
	{AudioOff, []string{"AU_OFF"}},
	{MusicOn, []string{"MU_ON"}},
	{MusicOff, []string{"MU_OFF"}},
	{VoiceInc, []string{"MUV_IN"}},
	{VoiceDec, []string{"MUV_DE"}},

	{Qwerty, []string{"QWERTY"}},
	{Lower, []string{"LOWER"}},
	{Raise, []string{"RAISE"}},
}

var (
	canonical = map[Keycode]string{}
	byName    = map[string]Keycode{}
)

func init() {
	for _, n := range names {
		canonical[n.code] = n.names[0]
		for _, alias := range n.names {
			byName[strings.ToUpper(alias)] = n.code
		}
	}
}

// Names returns the canonical name of every named keycode.
func Names() []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.names[0])
	}
	return out
}
