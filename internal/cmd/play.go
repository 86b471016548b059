package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/planckmap/device"
	"github.com/Alia5/planckmap/device/keyboard"
	"github.com/Alia5/planckmap/engine"
	"github.com/Alia5/planckmap/internal/configpaths"
	"github.com/Alia5/planckmap/internal/eeprom"
	"github.com/Alia5/planckmap/internal/log"
	"github.com/Alia5/planckmap/layer"
	"github.com/Alia5/planckmap/layout"

	"golang.org/x/term"
)

// Play feeds matrix events to the keymap and prints what the host would see.
type Play struct {
	Layout   string `help:"Layout file (json, yaml or toml); the built-in Planck layout when empty" env:"PLANCKMAP_LAYOUT"`
	Script   string `help:"Read events from this file instead of stdin"`
	EEPROM   string `name:"eeprom" help:"EEPROM image path (default: <config dir>/eeprom.bin)" env:"PLANCKMAP_EEPROM"`
	Volatile bool   `help:"Keep the default layer in memory only"`
	Watch    bool   `help:"Reload the layout file when it changes"`
}

// Run is called by Kong when the play command is executed.
func (p *Play) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := io.Reader(os.Stdin)
	interactive := false
	if p.Script != "" {
		f, err := os.Open(p.Script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	} else {
		interactive = term.IsTerminal(int(os.Stdin.Fd()))
	}
	return p.run(ctx, in, os.Stdout, interactive, logger, rawLogger)
}

func (p *Play) store(logger *slog.Logger) (eeprom.Store, layer.Layer, error) {
	var st eeprom.Store
	if p.Volatile {
		st = eeprom.NewMemory()
	} else {
		path := p.EEPROM
		if path == "" {
			path = configpaths.DefaultEEPROMPath()
		}
		st = eeprom.Open(path)
	}

	def, err := st.Load()
	if errors.Is(err, eeprom.ErrCorrupt) {
		logger.Warn("EEPROM image is corrupt, resetting", "error", err)
		if err := st.Reset(); err != nil {
			return nil, 0, fmt.Errorf("reset eeprom: %w", err)
		}
		return st, layer.Base, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return st, def, nil
}

func (p *Play) run(ctx context.Context, in io.Reader, out io.Writer, interactive bool, logger *slog.Logger, rawLogger log.RawLogger) error {
	table, err := loadTable(p.Layout)
	if err != nil {
		return err
	}
	st, def, err := p.store(logger)
	if err != nil {
		return err
	}

	kb := keyboard.New()
	kb.SetReportCallback(func(r device.Report) {
		rawLogger.Log(r)
		fmt.Fprintf(out, "  %-8s % x\n", r.Endpoint, r.Data)
	})
	kb.SetLEDCallback(func(led keyboard.LEDState) {
		logger.Info("host LEDs changed", "num", led.NumLock, "caps", led.CapsLock, "scroll", led.ScrollLock)
	})

	machine := layer.NewMachine(layer.NewState(def), st, logger)
	eng, err := engine.New(table, machine, kb,
		engine.WithLogger(logger),
		engine.WithHooks(engine.Hooks{Reset: func() {
			fmt.Fprintln(out, "  reset: jump to bootloader requested")
		}}),
	)
	if err != nil {
		return err
	}
	logger.Info("keymap ready", "layers", table.Layers(), "matrix", fmt.Sprintf("%dx%d", table.Rows(), table.Cols()), "default", def)

	var reload <-chan struct{}
	if p.Watch {
		if p.Layout == "" {
			return errors.New("--watch needs --layout")
		}
		w, ch, err := watchLayout(p.Layout, logger)
		if err != nil {
			return fmt.Errorf("watch layout: %w", err)
		}
		defer w.Close()
		reload = ch
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	prompt := func() {
		if interactive {
			fmt.Fprint(out, "> ")
		}
	}
	prompt()

	n := 0
	for {
		select {
		case <-ctx.Done():
			eng.ReleaseAll()
			return nil
		case <-reload:
			p.reload(eng, logger)
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			n++
			if err := p.exec(eng, kb, line, out); err != nil {
				if !interactive {
					return fmt.Errorf("line %d: %w", n, err)
				}
				logger.Error("bad event", "error", err)
			}
			prompt()
		}
	}
}

func (p *Play) exec(eng *engine.Engine, kb *keyboard.Keyboard, line string, out io.Writer) error {
	s, err := ParseStep(line)
	if err != nil {
		return err
	}
	switch s.Action {
	case ActionNone:
		return nil
	case ActionState:
		fmt.Fprintf(out, "layers=%s held=%v leds=%+v\n", eng.Stack(), eng.Held(), kb.GetLEDState())
		return nil
	case ActionLEDs:
		kb.HandleOutput([]byte{s.LEDs})
		return nil
	case ActionTap:
		if err := press(eng, s.Pos, true, out); err != nil {
			return err
		}
		return press(eng, s.Pos, false, out)
	default:
		return press(eng, s.Pos, s.Action == ActionDown, out)
	}
}

func press(eng *engine.Engine, pos layout.Position, pressed bool, out io.Writer) error {
	kc, err := eng.Process(engine.Event{Pos: pos, Pressed: pressed})
	if err != nil {
		return err
	}
	verb := "up"
	if pressed {
		verb = "down"
	}
	fmt.Fprintf(out, "%-4s %s %s layers=%s\n", verb, pos, kc, eng.Stack())
	return nil
}

func (p *Play) reload(eng *engine.Engine, logger *slog.Logger) {
	t, err := layout.Load(p.Layout)
	if err == nil {
		err = eng.Reload(t)
	}
	if err != nil {
		logger.Error("layout reload failed, keeping the current one", "path", p.Layout, "error", err)
		return
	}
	logger.Info("layout reloaded", "path", p.Layout)
}
