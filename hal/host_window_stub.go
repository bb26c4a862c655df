//go:build !cgo

package hal

import (
	"errors"

	"github.com/rs/zerolog"
)

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
	TPS    int
}

func RunWindow(_ zerolog.Logger, _ func(HAL) (Step, error), _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
