// Package config holds the command-line surface of planckmap.
package config

import (
	"github.com/Alia5/planckmap/internal/cmd"
	"github.com/Alia5/planckmap/internal/log"
)

// CLI is the root kong model. Flags may also come from environment variables
// and config files.
type CLI struct {
	Config string     `help:"Config file path (json, yaml or toml)" type:"path" env:"PLANCKMAP_CONFIG"`
	Log    log.Config `embed:"" prefix:"log."`

	Play     cmd.Play          `cmd:"" help:"Feed matrix events to the keymap and print the resulting HID reports"`
	Print    cmd.Print         `cmd:"" help:"Render layout layers as keycap grids"`
	Validate cmd.Validate      `cmd:"" help:"Check a layout file for defects"`
	Export   cmd.Export        `cmd:"" help:"Write the built-in Planck layout as a layout file"`
	EEPROM   cmd.EEPROMCommand `cmd:"" name:"eeprom" help:"Inspect or reset the persisted default layer"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
