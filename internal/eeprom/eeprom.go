// Package eeprom emulates the firmware's persistent configuration storage
// with a small image file on disk.
//
// Image layout (10 bytes, little endian):
//
//	Bytes 0-1: Magic (0xFEED)
//	Bytes 2-5: Default layer bitmask (1 << layer)
//	Bytes 6-9: First 4 bytes of the BLAKE2b-256 digest of bytes 0-5
package eeprom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/planckmap/layer"
)

const (
	Magic     uint16 = 0xFEED
	ImageSize        = 10
)

var (
	ErrCorrupt = errors.New("eeprom image corrupt")
)

// Store persists the default layer.
type Store interface {
	layer.Persister
	Load() (layer.Layer, error)
	Reset() error
}

// Encode builds the image for default layer l.
func Encode(l layer.Layer) []byte {
	b := make([]byte, ImageSize)
	binary.LittleEndian.PutUint16(b[0:2], Magic)
	binary.LittleEndian.PutUint32(b[2:6], 1<<l)
	sum := blake2b.Sum256(b[:6])
	copy(b[6:10], sum[:4])
	return b
}

// Decode parses an image produced by Encode.
func Decode(b []byte) (layer.Layer, error) {
	if len(b) != ImageSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(b))
	}
	if m := binary.LittleEndian.Uint16(b[0:2]); m != Magic {
		return 0, fmt.Errorf("%w: magic 0x%04X", ErrCorrupt, m)
	}
	sum := blake2b.Sum256(b[:6])
	if !bytes.Equal(sum[:4], b[6:10]) {
		return 0, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	mask := binary.LittleEndian.Uint32(b[2:6])
	if bits.OnesCount32(mask) != 1 {
		return 0, fmt.Errorf("%w: default layer mask 0x%08X", ErrCorrupt, mask)
	}
	l := layer.Layer(bits.TrailingZeros32(mask))
	if !l.Valid() {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, layer.ErrUnknownLayer)
	}
	return l, nil
}

// File is a Store backed by an image file.
type File struct {
	path string
	mu   sync.Mutex
}

// Open returns a File store at path. The file is created on first write.
func Open(path string) *File {
	return &File{path: path}
}

// Path returns the image location.
func (f *File) Path() string { return f.path }

// Load returns the persisted default layer. A missing image yields Base.
func (f *File) Load() (layer.Layer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var data []byte
	err := withLock(f.path, false, func() error {
		var err error
		data, err = os.ReadFile(f.path)
		return err
	})
	if errors.Is(err, os.ErrNotExist) {
		return layer.Base, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read eeprom: %w", err)
	}
	return Decode(data)
}

// SetDefaultLayer implements layer.Persister.
func (f *File) SetDefaultLayer(l layer.Layer) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %d", layer.ErrUnknownLayer, l)
	}
	return f.write(Encode(l))
}

// Reset rewrites the image with Base as the default layer.
func (f *File) Reset() error {
	return f.write(Encode(layer.Base))
}

func (f *File) write(image []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create eeprom dir: %w", err)
	}
	return withLock(f.path, true, func() error {
		tmp, err := os.CreateTemp(filepath.Dir(f.path), ".eeprom-*")
		if err != nil {
			return fmt.Errorf("create temp image: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(image); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write image: %w", err)
		}
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("sync image: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("close image: %w", err)
		}
		if err := os.Rename(tmp.Name(), f.path); err != nil {
			return fmt.Errorf("replace image: %w", err)
		}
		return nil
	})
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	image  []byte
	Writes int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{} }

// Load returns the stored default layer. An empty store yields Base.
func (m *Memory) Load() (layer.Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.image == nil {
		return layer.Base, nil
	}
	return Decode(m.image)
}

// SetDefaultLayer implements layer.Persister.
func (m *Memory) SetDefaultLayer(l layer.Layer) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %d", layer.ErrUnknownLayer, l)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = Encode(l)
	m.Writes++
	return nil
}

// Reset stores an image with Base as the default layer.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = Encode(layer.Base)
	return nil
}

// Image returns a copy of the stored image, or nil if nothing was written.
func (m *Memory) Image() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bytes.Clone(m.image)
}
