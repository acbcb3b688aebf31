package display

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"timing-report/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
)

// Presenter shows a written chart to the user. Callers treat a failure as a
// warning; the image file is already complete when Present runs.
type Presenter interface {
	Present(ctx context.Context, path string) error
}

func New(mode string, logger *logrus.Logger) Presenter {
	switch mode {
	case config.DisplayOpen:
		return NewOpener(logger)
	case config.DisplayAuto:
		if Available(runtime.GOOS, os.Getenv) {
			return NewOpener(logger)
		}
	}
	return &None{logger: logger}
}

// Available reports whether a graphical session is likely present.
func Available(goos string, getenv func(string) string) bool {
	switch goos {
	case "darwin", "windows":
		return true
	default:
		return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	}
}

type None struct {
	logger *logrus.Logger
}

func (n *None) Present(ctx context.Context, path string) error {
	n.logger.WithField("file", path).Debug("No display available, chart not shown")
	return nil
}

// Opener hands the file to the desktop's default image viewer and returns
// without waiting for it.
type Opener struct {
	start  func(input string) error
	logger *logrus.Logger
}

func NewOpener(logger *logrus.Logger) *Opener {
	return &Opener{start: open.Start, logger: logger}
}

func (o *Opener) Present(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := o.start(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	o.logger.WithField("file", path).Debug("Opened chart")
	return nil
}
