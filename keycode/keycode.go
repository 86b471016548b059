// Package keycode defines the 16-bit keycodes stored in a layout table.
//
// A Keycode is resolved into a Kind once, at the boundary between the layout
// table and whoever consumes it, so callers switch on the kind rather than on
// raw numeric ranges.
package keycode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Alia5/planckmap/device/keyboard"
)

// Keycode is a single layout table entry.
type Keycode uint16

// Kind classifies a Keycode.
type Kind uint8

const (
	KindNone Kind = iota
	KindTransparent
	KindBasic
	KindConsumer
	KindReserved
	KindCustom
)

var kindNames = [...]string{
	KindNone:        "none",
	KindTransparent: "transparent",
	KindBasic:       "basic",
	KindConsumer:    "consumer",
	KindReserved:    "reserved",
	KindCustom:      "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

const (
	basicMin     Keycode = 0x0004
	basicMax     Keycode = 0x00E7
	consumerBase Keycode = 0x0100
	consumerMax  Keycode = 0x01FF
	reservedBase Keycode = 0x5C00

	// SafeRange is the first keycode available to the keymap itself. Every
	// code at or above it is a custom keycode.
	SafeRange Keycode = 0x7E00
)

// ErrUnknownName is returned by Parse for names it does not recognise.
var ErrUnknownName = errors.New("unknown keycode name")

// Basic wraps a HID keyboard usage.
func Basic(usage uint8) Keycode { return Keycode(usage) }

// Consumer wraps a consumer-page usage below 0x100.
func Consumer(usage uint8) Keycode { return consumerBase | Keycode(usage) }

// Kind returns the classification of k.
func (k Keycode) Kind() Kind {
	switch {
	case k == No:
		return KindNone
	case k == Transparent:
		return KindTransparent
	case k >= basicMin && k <= basicMax:
		return KindBasic
	case k >= consumerBase && k <= consumerMax:
		return KindConsumer
	case k >= SafeRange:
		return KindCustom
	default:
		return KindReserved
	}
}

// Usage returns the HID usage carried by a basic or consumer keycode, and 0
// for every other kind.
func (k Keycode) Usage() uint16 {
	switch k.Kind() {
	case KindBasic:
		return uint16(k)
	case KindConsumer:
		return uint16(k - consumerBase)
	default:
		return 0
	}
}

// IsModifier reports whether k is one of the eight modifier keys.
func (k Keycode) IsModifier() bool {
	return k.Kind() == KindBasic && keyboard.IsModifier(uint8(k))
}

// String returns the canonical name of k, or its hex value if it has none.
func (k Keycode) String() string {
	if n, ok := canonical[k]; ok {
		return n
	}
	return fmt.Sprintf("0x%04X", uint16(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Keycode) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Keycode) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Parse resolves a keycode name. Names are matched case-insensitively; hex
// literals such as 0x7E00 are accepted as well.
func Parse(name string) (Keycode, error) {
	s := strings.TrimSpace(name)
	if kc, ok := byName[strings.ToUpper(s)]; ok {
		return kc, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		return Keycode(v), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// MustParse is like Parse but panics on error.
func MustParse(name string) Keycode {
	kc, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return kc
}
