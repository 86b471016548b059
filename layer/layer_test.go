package layer_test

import (
	"testing"

	"github.com/Alia5/planckmap/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackLayers(t *testing.T) {
	type testCase struct {
		name     string
		stack    layer.Stack
		expected []layer.Layer
	}

	cases := []testCase{
		{
			name:     "base only",
			stack:    layer.Stack{},
			expected: []layer.Layer{layer.Qwerty},
		},
		{
			name:     "lower held",
			stack:    layer.Stack{Active: 1 << layer.Lower},
			expected: []layer.Layer{layer.Lower, layer.Qwerty},
		},
		{
			name:     "tri layer",
			stack:    layer.Stack{Active: 1<<layer.Lower | 1<<layer.Raise | 1<<layer.Adjust},
			expected: []layer.Layer{layer.Adjust, layer.Raise, layer.Lower, layer.Qwerty},
		},
		{
			name:     "non-base default",
			stack:    layer.Stack{Active: 1 << layer.Adjust, Default: layer.Raise},
			expected: []layer.Layer{layer.Adjust, layer.Raise, layer.Qwerty},
		},
		{
			name:     "momentary below default",
			stack:    layer.Stack{Active: 1 << layer.Lower, Default: layer.Raise},
			expected: []layer.Layer{layer.Raise, layer.Lower, layer.Qwerty},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.stack.Layers())
		})
	}
}

func TestStackString(t *testing.T) {
	s := layer.Stack{Active: 1<<layer.Lower | 1<<layer.Raise | 1<<layer.Adjust}
	assert.Equal(t, "adjust>raise>lower>qwerty", s.String())
	assert.True(t, s.IsOn(layer.Qwerty))
	assert.True(t, s.IsOn(layer.Raise))
}

func TestStateOnOff(t *testing.T) {
	var st layer.State
	st.On(layer.Raise)
	assert.True(t, st.IsOn(layer.Raise))
	assert.False(t, st.IsOn(layer.Lower))

	st.Off(layer.Raise)
	assert.False(t, st.IsOn(layer.Raise))

	st.On(layer.Lower)
	st.On(layer.Adjust)
	st.Clear()
	assert.Equal(t, layer.Stack{}, st.Snapshot())
}

func TestUpdateTri(t *testing.T) {
	st := layer.NewState(layer.Base)
	st.On(layer.Lower)
	st.UpdateTri(layer.Lower, layer.Raise, layer.Adjust)
	assert.False(t, st.IsOn(layer.Adjust))

	st.On(layer.Raise)
	st.UpdateTri(layer.Lower, layer.Raise, layer.Adjust)
	assert.True(t, st.IsOn(layer.Adjust))
}

func TestParseLayer(t *testing.T) {
	type testCase struct {
		input    string
		expected layer.Layer
		wantErr  bool
	}

	cases := []testCase{
		{input: "qwerty", expected: layer.Qwerty},
		{input: "BASE", expected: layer.Base},
		{input: "Lower", expected: layer.Lower},
		{input: " raise ", expected: layer.Raise},
		{input: "3", expected: layer.Adjust},
		{input: "4", wantErr: true},
		{input: "dvorak", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			l, err := layer.ParseLayer(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, layer.ErrUnknownLayer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, l)
		})
	}

	assert.Equal(t, "layer(9)", layer.Layer(9).String())
	assert.False(t, layer.Layer(9).Valid())
}
