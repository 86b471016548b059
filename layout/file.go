package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/planckmap/keycode"
	"github.com/Alia5/planckmap/layer"
)

// Format is a layout file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrFormat is returned for unsupported file formats.
var ErrFormat = errors.New("unsupported layout format")

// ParseFormat normalizes a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// File is the serialized form of a Table.
type File struct {
	Rows   int         `json:"rows" yaml:"rows" toml:"rows"`
	Cols   int         `json:"cols" yaml:"cols" toml:"cols"`
	Layers []FileLayer `json:"layers" yaml:"layers" toml:"layers"`
}

// FileLayer is one layer of a layout file; keys are keycode names.
type FileLayer struct {
	Name string     `json:"name" yaml:"name" toml:"name"`
	Keys [][]string `json:"keys" yaml:"keys" toml:"keys"`
}

// Load reads and decodes a layout file. The table is not validated.
func Load(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	t, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode reads a layout in the given format.
func Decode(r io.Reader, format Format) (*Table, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&f); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return f.Table()
}

// Table converts the file form into a Table.
func (f *File) Table() (*Table, error) {
	names := make([]string, len(f.Layers))
	grids := make([][][]keycode.Keycode, len(f.Layers))
	var errs []error
	for l, fl := range f.Layers {
		names[l] = fl.Name
		grids[l] = make([][]keycode.Keycode, len(fl.Keys))
		for r, row := range fl.Keys {
			grids[l][r] = make([]keycode.Keycode, len(row))
			for c, name := range row {
				kc, err := keycode.Parse(name)
				if err != nil {
					errs = append(errs, fmt.Errorf("layer %d %s: %w", l, Position{Row: r, Col: c}, err))
					continue
				}
				grids[l][r][c] = kc
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return New(f.Rows, f.Cols, names, grids)
}

// ToFile converts a Table into its serialized form.
func (t *Table) ToFile() *File {
	f := &File{Rows: t.rows, Cols: t.cols, Layers: make([]FileLayer, len(t.keys))}
	for l, grid := range t.keys {
		fl := FileLayer{Name: t.Name(layer.Layer(l)), Keys: make([][]string, len(grid))}
		for r, row := range grid {
			fl.Keys[r] = make([]string, len(row))
			for c, kc := range row {
				fl.Keys[r][c] = kc.String()
			}
		}
		f.Layers[l] = fl
	}
	return f
}

// Encode writes t in the given format.
func Encode(w io.Writer, t *Table, format Format) error {
	f := t.ToFile()
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(f, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(f); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	case FormatTOML:
		data, err = toml.Marshal(*f)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
