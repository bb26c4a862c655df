package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	Width   int
	Height  int
	// Realtime paces ticks with a wall-clock ticker. Otherwise ticks run
	// back to back, still with a fixed dt.
	Realtime bool
}

// RunHeadless drives the app at a fixed dt without opening a window. It
// returns after cfg.Ticks ticks (0 = until ctx is done) or on a step error.
func RunHeadless(ctx context.Context, log zerolog.Logger, newApp func(HAL) (Step, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Width, cfg.Height, log)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	var tc <-chan time.Time
	if cfg.Realtime {
		t := time.NewTicker(d)
		defer t.Stop()
		tc = t.C
	}

	var tick uint64
	for {
		if tc != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tc:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := step(d); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			h.log.Debug().Uint64("ticks", tick).Msg("headless run complete")
			return nil
		}
	}
}
