// Package layout holds the immutable layer × row × column keycode table and
// the resolver that walks it through the active layer stack.
package layout

import (
	"errors"
	"fmt"

	"github.com/Alia5/planckmap/keycode"
	"github.com/Alia5/planckmap/layer"
)

var (
	ErrShape            = errors.New("layout shape mismatch")
	ErrTransparentBase  = errors.New("base layer entry is transparent")
	ErrUnknownCustom    = errors.New("unknown custom keycode")
	ErrUnreachableLayer = errors.New("layer is unreachable")
	ErrOutOfRange       = errors.New("position out of range")
)

// Position is a physical key location in the switch matrix.
type Position struct {
	Row int `json:"row" yaml:"row" toml:"row"`
	Col int `json:"col" yaml:"col" toml:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Table is an immutable keycode table. Every layer has the same rows × cols
// geometry.
type Table struct {
	rows, cols int
	names      []string
	keys       [][][]keycode.Keycode
}

// New builds a Table from per-layer key grids. The grids are copied. names
// may be nil, in which case the layer ids are used.
func New(rows, cols int, names []string, layers [][][]keycode.Keycode) (*Table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d matrix", ErrShape, rows, cols)
	}
	if len(layers) == 0 || len(layers) > layer.Count {
		return nil, fmt.Errorf("%w: %d layers, want 1..%d", ErrShape, len(layers), layer.Count)
	}
	if names != nil && len(names) != len(layers) {
		return nil, fmt.Errorf("%w: %d names for %d layers", ErrShape, len(names), len(layers))
	}

	t := &Table{rows: rows, cols: cols, keys: make([][][]keycode.Keycode, len(layers))}
	for l, grid := range layers {
		if len(grid) != rows {
			return nil, fmt.Errorf("%w: layer %d has %d rows, want %d", ErrShape, l, len(grid), rows)
		}
		t.keys[l] = make([][]keycode.Keycode, rows)
		for r, row := range grid {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: layer %d row %d has %d columns, want %d", ErrShape, l, r, len(row), cols)
			}
			t.keys[l][r] = append([]keycode.Keycode(nil), row...)
		}
	}

	t.names = make([]string, len(layers))
	for l := range layers {
		if names != nil && names[l] != "" {
			t.names[l] = names[l]
		} else {
			t.names[l] = layer.Layer(l).String()
		}
	}
	return t, nil
}

// Rows returns the matrix row count.
func (t *Table) Rows() int { return t.rows }

// Cols returns the matrix column count.
func (t *Table) Cols() int { return t.cols }

// Layers returns the number of layers in the table.
func (t *Table) Layers() int { return len(t.keys) }

// Name returns the display name of layer l.
func (t *Table) Name(l layer.Layer) string {
	if int(l) < len(t.names) {
		return t.names[l]
	}
	return l.String()
}

// Contains reports whether pos is inside the matrix.
func (t *Table) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < t.rows && pos.Col >= 0 && pos.Col < t.cols
}

// Lookup returns the raw entry at pos on layer l. Layers the table does not
// define and positions outside the matrix read as transparent.
func (t *Table) Lookup(l layer.Layer, pos Position) keycode.Keycode {
	if int(l) >= len(t.keys) || !t.Contains(pos) {
		return keycode.Transparent
	}
	return t.keys[l][pos.Row][pos.Col]
}

// Resolve returns the keycode at pos for the given layer stack: the first
// non-transparent entry walking the active layers from highest to lowest,
// ending at Base.
func (t *Table) Resolve(pos Position, stack layer.Stack) keycode.Keycode {
	for _, l := range stack.Layers() {
		if kc := t.Lookup(l, pos); kc != keycode.Transparent {
			return kc
		}
	}
	return keycode.No
}

// Validate reports every configuration defect in the table.
func (t *Table) Validate() error {
	var errs []error
	var hasLower, hasRaise, hasAdjustKeys bool

	for l := range t.keys {
		for r := range t.keys[l] {
			for c, kc := range t.keys[l][r] {
				pos := Position{Row: r, Col: c}
				if layer.Layer(l) == layer.Base && kc == keycode.Transparent {
					errs = append(errs, fmt.Errorf("%w at %s", ErrTransparentBase, pos))
				}
				switch kc {
				case keycode.Lower:
					hasLower = true
				case keycode.Raise:
					hasRaise = true
				case keycode.Qwerty:
				default:
					if kc.Kind() == keycode.KindCustom {
						errs = append(errs, fmt.Errorf("%w %s on layer %s at %s", ErrUnknownCustom, kc, t.Name(layer.Layer(l)), pos))
					}
				}
				if layer.Layer(l) == layer.Adjust && kc != keycode.Transparent {
					hasAdjustKeys = true
				}
			}
		}
	}

	if hasAdjustKeys && !(hasLower && hasRaise) {
		errs = append(errs, fmt.Errorf("%w: %s needs both LOWER and RAISE in the layout", ErrUnreachableLayer, t.Name(layer.Adjust)))
	}
	return errors.Join(errs...)
}
