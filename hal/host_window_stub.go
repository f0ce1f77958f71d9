//go:build !tinygo && !cgo

package hal

import (
	"fmt"
	"io"
)

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title         string
	Width, Height int
	Scale         int
	TPS           int
	Log           io.Writer
}

func RunWindow(_ WindowConfig, _ func(h HAL) func() error) error {
	return fmt.Errorf("%w: window mode requires cgo (build/run with CGO_ENABLED=1)", ErrNotImplemented)
}
