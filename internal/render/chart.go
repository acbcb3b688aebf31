package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

type Point struct {
	X, Y float64
}

type Series struct {
	Label  string
	Points []Point
}

// Chart is a backend independent description of one line chart. Series are
// drawn in slice order and listed in the legend in the same order.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Legend bool
	Grid   bool
}

type Renderer interface {
	// Render writes c to path. The image format follows the file extension.
	Render(ctx context.Context, c *Chart, path string) error
}

// Options are shared by every backend.
type Options struct {
	WidthInches  float64
	HeightInches float64
}

const dpi = 100

func New(name string, opts Options) (Renderer, error) {
	switch name {
	case "gonum":
		return NewGonum(opts), nil
	case "gochart":
		return NewGoChart(opts), nil
	case "tikz":
		return NewTikZ(opts), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", name)
	}
}

func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// checkPoints rejects values no backend can place on an axis. NaN marks a
// missing measurement and is drawn as a gap.
func (c *Chart) checkPoints() error {
	for _, s := range c.Series {
		for i, p := range s.Points {
			if math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return fmt.Errorf("series %q point %d: infinite value (%v, %v)", s.Label, i, p.X, p.Y)
			}
		}
	}
	return nil
}

func (p Point) missing() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// segments splits the series at missing points. Each segment is drawn as
// its own polyline, the way matplotlib breaks a line at NaN.
func (s Series) segments() [][]Point {
	var out [][]Point
	var cur []Point
	for _, p := range s.Points {
		if p.missing() {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// bounds returns the extent of the drawable points, widened by one unit on
// each side when all values coincide so a single point still gets an axis.
func (c *Chart) bounds() (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.missing() {
				continue
			}
			xMin = math.Min(xMin, p.X)
			xMax = math.Max(xMax, p.X)
			yMin = math.Min(yMin, p.Y)
			yMax = math.Max(yMax, p.Y)
		}
	}
	xMin, xMax = widen(xMin, xMax)
	yMin, yMax = widen(yMin, yMax)
	return
}

func widen(lo, hi float64) (float64, float64) {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// pointCount counts drawable points.
func (c *Chart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !p.missing() {
				n++
			}
		}
	}
	return n
}

// writeFile encodes into memory first and then replaces path atomically, so
// an encoding error or an interrupted run never leaves a truncated image.
// New files get 0644; an overwritten file keeps its mode.
func writeFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	created := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if created {
		if err := os.Chmod(path, 0o644); err != nil {
			return err
		}
	}
	return nil
}
