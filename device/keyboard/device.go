// Package keyboard provides a HID keyboard endpoint with full N-key rollover
// and a consumer-control interface for media keys.
package keyboard

import (
	"sync"

	"github.com/Alia5/planckmap/device"
)

var (
	_ device.ReportBuilder = InputState{}
	_ device.ReportBuilder = ConsumerState{}
)

// Keyboard holds the state reported to the host. Every state change emits a
// report through the callback installed with SetReportCallback.
type Keyboard struct {
	stateMu     sync.Mutex
	inputState  InputState
	consumer    ConsumerState
	ledState    uint8
	ledCallback func(LEDState)
	onReport    device.ReportFunc
}

// New returns a new Keyboard with nothing pressed.
func New() *Keyboard {
	return &Keyboard{}
}

// SetReportCallback sets the function receiving every emitted report.
func (k *Keyboard) SetReportCallback(f device.ReportFunc) {
	k.stateMu.Lock()
	defer k.stateMu.Unlock()
	k.onReport = f
}

// SetLEDCallback sets a callback that will be invoked when LED state changes.
func (k *Keyboard) SetLEDCallback(f func(LEDState)) {
	k.stateMu.Lock()
	defer k.stateMu.Unlock()
	k.ledCallback = f
}

// Press registers usage as held and emits a keyboard report if anything changed.
func (k *Keyboard) Press(usage uint8) {
	k.update(func(st *InputState) bool {
		if st.IsPressed(usage) {
			return false
		}
		st.Press(usage)
		return true
	})
}

// Release clears usage and emits a keyboard report if anything changed.
func (k *Keyboard) Release(usage uint8) {
	k.update(func(st *InputState) bool {
		if !st.IsPressed(usage) {
			return false
		}
		st.Release(usage)
		return true
	})
}

func (k *Keyboard) update(mutate func(*InputState) bool) {
	k.stateMu.Lock()
	if !mutate(&k.inputState) {
		k.stateMu.Unlock()
		return
	}
	report := k.inputState.BuildReport()
	cb := k.onReport
	k.stateMu.Unlock()

	if cb != nil {
		cb(device.Report{Endpoint: device.EndpointKeyboard, Data: report})
	}
}

// PressConsumer sets the active consumer usage and emits a consumer report.
func (k *Keyboard) PressConsumer(usage uint16) {
	k.setConsumer(usage, func(uint16) bool { return true })
}

// ReleaseConsumer clears the consumer usage if usage is the one held.
func (k *Keyboard) ReleaseConsumer(usage uint16) {
	k.setConsumer(0, func(held uint16) bool { return held == usage })
}

// setConsumer replaces the held usage when allow accepts it; the check and
// the write share one critical section.
func (k *Keyboard) setConsumer(usage uint16, allow func(held uint16) bool) {
	k.stateMu.Lock()
	if k.consumer.Usage == usage || !allow(k.consumer.Usage) {
		k.stateMu.Unlock()
		return
	}
	k.consumer.Usage = usage
	report := k.consumer.BuildReport()
	cb := k.onReport
	k.stateMu.Unlock()

	if cb != nil {
		cb(device.Report{Endpoint: device.EndpointConsumer, Data: report})
	}
}

// InputState returns a copy of the current keyboard state.
func (k *Keyboard) InputState() InputState {
	k.stateMu.Lock()
	defer k.stateMu.Unlock()
	return k.inputState
}

// ConsumerState returns a copy of the current consumer state.
func (k *Keyboard) ConsumerState() ConsumerState {
	k.stateMu.Lock()
	defer k.stateMu.Unlock()
	return k.consumer
}

// ReleaseAll clears every key and the consumer usage, emitting reports for
// whatever was held.
func (k *Keyboard) ReleaseAll() {
	k.update(func(st *InputState) bool {
		if *st == (InputState{}) {
			return false
		}
		*st = InputState{}
		return true
	})
	k.setConsumer(0, func(uint16) bool { return true })
}

// HandleOutput processes an output report from the host (LED bitmask).
func (k *Keyboard) HandleOutput(out []byte) {
	var led LEDState
	if err := led.UnmarshalBinary(out); err != nil {
		return
	}
	k.stateMu.Lock()
	k.ledState = out[0]
	cb := k.ledCallback
	k.stateMu.Unlock()

	if cb != nil {
		cb(led)
	}
}

// GetLEDState returns the current LED state from the host.
func (k *Keyboard) GetLEDState() LEDState {
	k.stateMu.Lock()
	defer k.stateMu.Unlock()
	var led LEDState
	_ = led.UnmarshalBinary([]byte{k.ledState})
	return led
}
