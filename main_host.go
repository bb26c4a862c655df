package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"

	"lightglobe/app"
	"lightglobe/hal"
	"lightglobe/internal/buildinfo"
	"lightglobe/internal/config"
	"lightglobe/internal/logging"
)

func main() {
	var hcfg hal.HeadlessConfig
	var cfgPath string
	var showVersion bool
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&hcfg.Realtime, "realtime", true, "Pace headless ticks with the wall clock.")
	flag.StringVar(&cfgPath, "config", "", "Config file (TOML, JSON or YAML).")
	flag.BoolVar(&showVersion, "version", false, "Print the build version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.String())
		return
	}

	if err := run(cfgPath, hcfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath string, hcfg hal.HeadlessConfig) error {
	cfg, err := config.Load(cfgPath, ".env")
	if err != nil {
		return err
	}

	fsys := afero.NewOsFs()
	var logFile io.Writer
	if cfg.Log.File != "" {
		f, err := fsys.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logFile = f
	}
	log := logging.New(cfg.Log.Level, os.Stderr, logFile)
	log.Info().Str("version", buildinfo.Short()).Bool("headless", hcfg.Enabled).Msg("starting")

	newApp := app.NewStep(cfg, fsys)

	if hcfg.Enabled {
		hcfg.Width, hcfg.Height = cfg.Window.Width, cfg.Window.Height
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, log, newApp, hcfg)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return hal.RunWindow(log, newApp, hal.WindowConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Scale:  cfg.Window.Scale,
		TPS:    cfg.Window.TPS,
	})
}
