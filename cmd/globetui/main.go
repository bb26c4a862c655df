// Command globetui runs the globe headless and drives it from a terminal
// marker list.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"lightglobe/app"
	"lightglobe/internal/config"
	"lightglobe/internal/logging"
	"lightglobe/internal/tui"
)

func main() {
	cfgPath := flag.String("config", "", "Config file (TOML, JSON or YAML).")
	fps := flag.Int("fps", 30, "Globe updates per second.")
	flag.Parse()

	if err := run(*cfgPath, *fps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath string, fps int) error {
	cfg, err := config.Load(cfgPath, ".env")
	if err != nil {
		return err
	}
	if fps <= 0 {
		return fmt.Errorf("invalid fps: %d", fps)
	}

	fsys := afero.NewOsFs()
	// The terminal belongs to the UI; logs only go to the configured file.
	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := fsys.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logging.New(cfg.Log.Level, out, nil)

	core, err := app.NewCore(cfg, fsys, log)
	if err != nil {
		return err
	}
	core.Controller.Resize(cfg.Window.Width, cfg.Window.Height)

	m := tui.New(core.Controller, core.Registry, time.Second/time.Duration(fps), cfg.Pick.FocusLevel)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
