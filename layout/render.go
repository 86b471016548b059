package layout

import (
	"bufio"
	"io"
	"strings"

	"github.com/Alia5/planckmap/keycode"
	"github.com/Alia5/planckmap/layer"
)

const cellWidth = 6

// Render draws the given layers of t as legend grids. With no layers given,
// every layer is drawn.
func Render(w io.Writer, t *Table, layers ...layer.Layer) error {
	if len(layers) == 0 {
		for l := 0; l < t.Layers(); l++ {
			layers = append(layers, layer.Layer(l))
		}
	}

	bw := bufio.NewWriter(w)
	inner := strings.Repeat("-", t.cols*(cellWidth+1)-1)
	divider := "|" + strings.TrimSuffix(strings.Repeat(strings.Repeat("-", cellWidth)+"+", t.cols), "+") + "|"

	for i, l := range layers {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(t.Name(l) + "\n")
		bw.WriteString("," + inner + ".\n")
		for r := 0; r < t.rows; r++ {
			if r > 0 {
				bw.WriteString(divider + "\n")
			}
			bw.WriteString("|")
			for c := 0; c < t.cols; c++ {
				bw.WriteString(center(Legend(t.Lookup(l, Position{Row: r, Col: c}))))
				bw.WriteString("|")
			}
			bw.WriteString("\n")
		}
		bw.WriteString("`" + inner + "'\n")
	}
	return bw.Flush()
}

// Legend returns the short keycap label for kc.
func Legend(kc keycode.Keycode) string {
	switch kc {
	case keycode.Transparent:
		return ""
	case keycode.No:
		return "XXX"
	}
	s := strings.TrimPrefix(kc.String(), "KC_")
	if len(s) > cellWidth {
		s = s[:cellWidth]
	}
	return s
}

func center(s string) string {
	pad := cellWidth - len(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
