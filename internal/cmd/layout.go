package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/planckmap/internal/configpaths"
	"github.com/Alia5/planckmap/layer"
	"github.com/Alia5/planckmap/layout"
)

// loadTable reads the layout at path, or returns the built-in Planck layout
// when path is empty.
func loadTable(path string) (*layout.Table, error) {
	if path == "" {
		return layout.Planck(), nil
	}
	return layout.Load(path)
}

// Print renders layout layers as keycap grids.
type Print struct {
	Layout string   `help:"Layout file (json, yaml or toml); the built-in Planck layout when empty" env:"PLANCKMAP_LAYOUT"`
	Layer  []string `help:"Layers to render, by name or index (default: all)" sep:","`
}

// Run is called by Kong when the print command is executed.
func (p *Print) Run() error {
	return p.run(os.Stdout)
}

func (p *Print) run(w io.Writer) error {
	t, err := loadTable(p.Layout)
	if err != nil {
		return err
	}
	layers := make([]layer.Layer, 0, len(p.Layer))
	for _, name := range p.Layer {
		l, err := layer.ParseLayer(name)
		if err != nil {
			return err
		}
		if int(l) >= t.Layers() {
			return fmt.Errorf("layout has no layer %s", l)
		}
		layers = append(layers, l)
	}
	return layout.Render(w, t, layers...)
}

// Validate checks a layout for defects.
type Validate struct {
	Layout string `help:"Layout file (json, yaml or toml); the built-in Planck layout when empty" env:"PLANCKMAP_LAYOUT"`
}

// Run is called by Kong when the validate command is executed.
func (v *Validate) Run(logger *slog.Logger) error {
	return v.run(os.Stdout, logger)
}

func (v *Validate) run(w io.Writer, logger *slog.Logger) error {
	t, err := loadTable(v.Layout)
	if err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		logger.Debug("layout rejected", "path", v.Layout, "error", err)
		return err
	}
	source := v.Layout
	if source == "" {
		source = "built-in"
	}
	_, err = fmt.Fprintf(w, "%s: ok, %d layers on a %dx%d matrix\n", source, t.Layers(), t.Rows(), t.Cols())
	return err
}

// Export writes the built-in layout as a layout file.
type Export struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (default: stdout)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run is called by Kong when the export command is executed.
func (e *Export) Run(logger *slog.Logger) error {
	return e.run(os.Stdout, logger)
}

func (e *Export) run(stdout io.Writer, logger *slog.Logger) error {
	format, err := layout.ParseFormat(e.Format)
	if err != nil {
		return err
	}
	if e.Output == "" {
		return layout.Encode(stdout, layout.Planck(), format)
	}

	if !e.Force {
		if _, err := os.Stat(e.Output); err == nil {
			return fmt.Errorf("%s exists; use --force to overwrite", e.Output)
		}
	}
	if err := configpaths.EnsureDir(e.Output); err != nil {
		return err
	}
	f, err := os.Create(e.Output)
	if err != nil {
		return err
	}
	if err := layout.Encode(f, layout.Planck(), format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("layout exported", "path", e.Output, "format", format)
	return nil
}
