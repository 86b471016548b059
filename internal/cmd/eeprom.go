package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/planckmap/internal/configpaths"
	"github.com/Alia5/planckmap/internal/eeprom"
)

// EEPROMCommand groups commands for the persisted default layer.
type EEPROMCommand struct {
	Show  EEPROMShow  `cmd:"" help:"Print the persisted default layer"`
	Reset EEPROMReset `cmd:"" help:"Restore the factory default layer"`
}

// EEPROMShow prints the stored image.
type EEPROMShow struct {
	Path string `name:"eeprom" help:"EEPROM image path (default: <config dir>/eeprom.bin)" env:"PLANCKMAP_EEPROM"`
}

// Run is called by Kong when the eeprom show command is executed.
func (c *EEPROMShow) Run() error {
	return c.run(os.Stdout)
}

func (c *EEPROMShow) run(w io.Writer) error {
	path := eepromPath(c.Path)
	l, err := eeprom.Open(path).Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "path: %s\n", path)
	fmt.Fprintf(w, "default layer: %s (%d)\n", l, l)
	image, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		_, err = fmt.Fprintln(w, "image: none, factory default")
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "image: % x\n", image)
	return err
}

// EEPROMReset rewrites the image with the base layer as default.
type EEPROMReset struct {
	Path string `name:"eeprom" help:"EEPROM image path (default: <config dir>/eeprom.bin)" env:"PLANCKMAP_EEPROM"`
}

// Run is called by Kong when the eeprom reset command is executed.
func (c *EEPROMReset) Run(logger *slog.Logger) error {
	path := eepromPath(c.Path)
	if err := eeprom.Open(path).Reset(); err != nil {
		return err
	}
	logger.Info("EEPROM reset", "path", path)
	return nil
}

func eepromPath(p string) string {
	if p != "" {
		return p
	}
	return configpaths.DefaultEEPROMPath()
}
