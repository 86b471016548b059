package keyboard

import (
	"encoding/binary"
	"io"
)

// InputState represents the keyboard state used to build a report.
// Internally uses a 256-bit bitmap for N-key rollover support.
type InputState struct {
	Modifiers uint8     // bit 0-7: LCtrl, LShift, LAlt, LGui, RCtrl, RShift, RAlt, RGui
	KeyBitmap [32]uint8 // 256 bits for HID usage codes 0x00-0xFF
}

// ReportSize is the length of the NKRO input report produced by BuildReport.
const ReportSize = 34

// Press marks usage as held. Modifier usages set the matching modifier bit.
func (st *InputState) Press(usage uint8) {
	if IsModifier(usage) {
		st.Modifiers |= modifierBit(usage)
		return
	}
	st.KeyBitmap[usage/8] |= 1 << (usage % 8)
}

// Release clears usage.
func (st *InputState) Release(usage uint8) {
	if IsModifier(usage) {
		st.Modifiers &^= modifierBit(usage)
		return
	}
	st.KeyBitmap[usage/8] &^= 1 << (usage % 8)
}

// IsPressed reports whether usage is held.
func (st InputState) IsPressed(usage uint8) bool {
	if IsModifier(usage) {
		return st.Modifiers&modifierBit(usage) != 0
	}
	return st.KeyBitmap[usage/8]&(1<<(usage%8)) != 0
}

// Pressed returns the held non-modifier usages in ascending order.
func (st InputState) Pressed() []uint8 {
	var keys []uint8
	for i := 0; i < 256; i++ {
		if st.KeyBitmap[i/8]&(1<<uint(i%8)) != 0 {
			keys = append(keys, uint8(i))
		}
	}
	return keys
}

// BuildReport encodes an InputState into the 34-byte HID keyboard report.
//
// Report layout (34 bytes):
//
//	Byte 0: Modifiers (8 bits)
//	Byte 1: Reserved (0x00)
//	Bytes 2-33: Key bitmap (256 bits, 32 bytes)
func (st InputState) BuildReport() []byte {
	b := make([]byte, ReportSize)
	b[0] = st.Modifiers
	copy(b[2:ReportSize], st.KeyBitmap[:])
	return b
}

// MarshalBinary encodes InputState to the compact wire format:
// modifiers, key count, then the usage of every held key.
func (st InputState) MarshalBinary() ([]byte, error) {
	keys := st.Pressed()
	b := make([]byte, 2+len(keys))
	b[0] = st.Modifiers
	b[1] = uint8(len(keys))
	copy(b[2:], keys)
	return b, nil
}

// UnmarshalBinary decodes the compact wire format produced by MarshalBinary.
func (st *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return io.ErrUnexpectedEOF
	}
	keyCount := int(data[1])
	if len(data) < 2+keyCount {
		return io.ErrUnexpectedEOF
	}

	st.Modifiers = data[0]
	st.KeyBitmap = [32]uint8{}
	for _, usage := range data[2 : 2+keyCount] {
		st.KeyBitmap[usage/8] |= 1 << (usage % 8)
	}
	return nil
}

// ConsumerState holds the single consumer-page usage currently held (0 = none).
type ConsumerState struct {
	Usage uint16
}

// BuildReport encodes the consumer usage as a 2-byte little endian report.
func (c ConsumerState) BuildReport() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, c.Usage)
	return b
}

// LEDState represents the state of keyboard LEDs controlled by the host.
type LEDState struct {
	NumLock    bool
	CapsLock   bool
	ScrollLock bool
	Compose    bool
	Kana       bool
}

// UnmarshalBinary decodes a 1-byte LED bitmask into LEDState.
// Bits are defined by LEDNumLock, LEDCapsLock, LEDScrollLock, LEDCompose, LEDKana.
func (st *LEDState) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return io.ErrUnexpectedEOF
	}
	b := data[0]
	st.NumLock = b&LEDNumLock != 0
	st.CapsLock = b&LEDCapsLock != 0
	st.ScrollLock = b&LEDScrollLock != 0
	st.Compose = b&LEDCompose != 0
	st.Kana = b&LEDKana != 0
	return nil
}
