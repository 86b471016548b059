package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alia5/planckmap/internal/log"
	"github.com/Alia5/planckmap/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Print{Layer: []string{"adjust"}}).run(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "adjust\n"))
	assert.Contains(t, out, "QWERTY")
	assert.Contains(t, out, "RESET")
	assert.NotContains(t, out, "lower\n")

	buf.Reset()
	require.NoError(t, (&Print{}).run(&buf))
	for _, name := range []string{"qwerty\n", "lower\n", "raise\n", "adjust\n"} {
		assert.Contains(t, buf.String(), name)
	}

	assert.Error(t, (&Print{Layer: []string{"symbols"}}).run(&buf))
}

func TestValidate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Validate{}).run(&buf, log.Discard()))
	assert.Equal(t, "built-in: ok, 4 layers on a 4x12 matrix\n", buf.String())

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows":1,"cols":1,"layers":[{"name":"base","keys":[["_______"]]}]}`), 0o644))
	err := (&Validate{Layout: path}).run(&buf, log.Discard())
	assert.ErrorIs(t, err, layout.ErrTransparentBase)
}

func TestExport(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, (&Export{Format: "json"}).run(&stdout, log.Discard()))
	tbl, err := layout.Decode(&stdout, layout.FormatJSON)
	require.NoError(t, err)
	assert.NoError(t, tbl.Validate())

	dest := filepath.Join(t.TempDir(), "out", "planck.toml")
	e := &Export{Format: "toml", Output: dest}
	require.NoError(t, e.run(&stdout, log.Discard()))
	loaded, err := layout.Load(dest)
	require.NoError(t, err)
	assert.Equal(t, layout.Planck(), loaded)

	assert.Error(t, e.run(&stdout, log.Discard()), "refuses to overwrite")
	e.Force = true
	assert.NoError(t, e.run(&stdout, log.Discard()))
}
