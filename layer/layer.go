// Package layer implements the Planck layer stack and the state machine that
// drives it from the QWERTY, LOWER and RAISE keycodes.
package layer

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"sync"
)

// Layer identifies one overlay of the layout table.
type Layer uint8

const (
	Qwerty Layer = iota
	Lower
	Raise
	Adjust

	// Count is the number of layers in the layout.
	Count = 4
)

// Base is the layer every lookup falls back to.
const Base = Qwerty

var layerNames = [Count]string{"qwerty", "lower", "raise", "adjust"}

// ErrUnknownLayer is returned when a layer name or id is out of range.
var ErrUnknownLayer = errors.New("unknown layer")

func (l Layer) String() string {
	if l < Count {
		return layerNames[l]
	}
	return fmt.Sprintf("layer(%d)", uint8(l))
}

// Valid reports whether l is one of the defined layers.
func (l Layer) Valid() bool { return l < Count }

// ParseLayer resolves a layer by name ("lower") or by number ("1").
func ParseLayer(s string) (Layer, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range layerNames {
		if s == n || s == fmt.Sprint(i) {
			return Layer(i), nil
		}
	}
	if s == "base" {
		return Base, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}

// Stack is an immutable snapshot of the active layers.
type Stack struct {
	Active  uint32 // bit n set: layer n is momentarily on
	Default Layer
}

// IsOn reports whether l is active, either momentarily or as the default.
func (s Stack) IsOn(l Layer) bool {
	return s.Default == l || s.Active&(1<<l) != 0
}

// Layers returns the layers to search, highest layer number first, with the
// default layer merged in. Base always terminates the list.
func (s Stack) Layers() []Layer {
	mask := s.Active | 1<<s.Default
	out := make([]Layer, 0, bits.OnesCount32(mask)+1)
	for m := mask; m != 0; {
		hi := Layer(31 - bits.LeadingZeros32(m))
		m &^= 1 << hi
		out = append(out, hi)
	}
	if mask&(1<<Base) == 0 {
		out = append(out, Base)
	}
	return out
}

func (s Stack) String() string {
	parts := make([]string, 0, Count)
	for _, l := range s.Layers() {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, ">")
}

// State is the mutable layer stack. The zero value has no momentary layers
// and Base as the default.
type State struct {
	mu           sync.RWMutex
	active       uint32
	defaultLayer Layer
}

// NewState returns a State whose default layer is def.
func NewState(def Layer) *State {
	return &State{defaultLayer: def}
}

// On activates l.
func (s *State) On(l Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active |= 1 << l
}

// Off deactivates l.
func (s *State) Off(l Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active &^= 1 << l
}

// IsOn reports whether l is momentarily active.
func (s *State) IsOn(l Layer) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active&(1<<l) != 0
}

// UpdateTri turns c on when both a and b are on, and off otherwise.
func (s *State) UpdateTri(a, b, c Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateTri(a, b, c)
}

// SetTri switches l on or off and re-derives c from a and b in the same
// critical section, so no snapshot sees one change without the other.
func (s *State) SetTri(l Layer, on bool, a, b, c Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.active |= 1 << l
	} else {
		s.active &^= 1 << l
	}
	s.updateTri(a, b, c)
}

func (s *State) updateTri(a, b, c Layer) {
	both := uint32(1)<<a | uint32(1)<<b
	if s.active&both == both {
		s.active |= 1 << c
	} else {
		s.active &^= 1 << c
	}
}

// Default returns the default layer.
func (s *State) Default() Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultLayer
}

// SetDefault replaces the default layer.
func (s *State) SetDefault(l Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultLayer = l
}

// Clear turns every momentary layer off.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = 0
}

// Snapshot returns the current stack.
func (s *State) Snapshot() Stack {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stack{Active: s.active, Default: s.defaultLayer}
}
