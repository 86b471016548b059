package eeprom_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alia5/planckmap/internal/eeprom"
	"github.com/Alia5/planckmap/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	b := eeprom.Encode(layer.Raise)
	require.Len(t, b, eeprom.ImageSize)
	assert.Equal(t, []byte{0xED, 0xFE, 0x04, 0x00, 0x00, 0x00}, b[:6])

	l, err := eeprom.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, layer.Raise, l)
}

func TestDecodeCorrupt(t *testing.T) {
	type testCase struct {
		name  string
		image func() []byte
	}

	cases := []testCase{
		{name: "empty", image: func() []byte { return nil }},
		{name: "short", image: func() []byte { return eeprom.Encode(layer.Base)[:6] }},
		{
			name: "bad magic",
			image: func() []byte {
				b := eeprom.Encode(layer.Base)
				b[0] = 0x00
				return b
			},
		},
		{
			name: "flipped layer bit",
			image: func() []byte {
				b := eeprom.Encode(layer.Base)
				b[2] = 0x02
				return b
			},
		},
		{
			name: "bad checksum",
			image: func() []byte {
				b := eeprom.Encode(layer.Lower)
				b[9] ^= 0xFF
				return b
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eeprom.Decode(tc.image())
			assert.ErrorIs(t, err, eeprom.ErrCorrupt)
		})
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "eeprom.bin")
	store := eeprom.Open(path)
	assert.Equal(t, path, store.Path())

	l, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, layer.Base, l)

	require.NoError(t, store.SetDefaultLayer(layer.Adjust))
	l, err = eeprom.Open(path).Load()
	require.NoError(t, err)
	assert.Equal(t, layer.Adjust, l)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, eeprom.Encode(layer.Adjust), raw)

	require.NoError(t, store.Reset())
	l, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, layer.Base, l)

	assert.ErrorIs(t, store.SetDefaultLayer(layer.Layer(8)), layer.ErrUnknownLayer)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := eeprom.Open(path).Load()
	assert.ErrorIs(t, err, eeprom.ErrCorrupt)
}

func TestMemoryStore(t *testing.T) {
	var store eeprom.Store = eeprom.NewMemory()
	l, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, layer.Base, l)

	require.NoError(t, store.SetDefaultLayer(layer.Lower))
	l, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, layer.Lower, l)
	assert.Equal(t, 1, store.(*eeprom.Memory).Writes)

	require.NoError(t, store.Reset())
	l, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, layer.Base, l)
}

func TestResetWritesSameImageForBothStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	file := eeprom.Open(path)
	require.NoError(t, file.SetDefaultLayer(layer.Raise))
	require.NoError(t, file.Reset())
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)

	mem := eeprom.NewMemory()
	assert.Nil(t, mem.Image())
	require.NoError(t, mem.SetDefaultLayer(layer.Raise))
	require.NoError(t, mem.Reset())

	assert.Equal(t, eeprom.Encode(layer.Base), onDisk)
	assert.Equal(t, onDisk, mem.Image())
}
