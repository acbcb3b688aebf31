package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"timing-report/internal/render/styles"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChart renders charts with github.com/wcharczuk/go-chart. It only writes
// png and svg and draws every marker as a dot.
type GoChart struct {
	Width  int
	Height int
}

func NewGoChart(opts Options) *GoChart {
	return &GoChart{
		Width:  int(math.Round(opts.WidthInches * dpi)),
		Height: int(math.Round(opts.HeightInches * dpi)),
	}
}

func (g *GoChart) Render(ctx context.Context, c *Chart, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.checkPoints(); err != nil {
		return err
	}

	var provider chart.RendererProvider
	switch format := formatOf(path); format {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("go-chart cannot write format %q", format)
	}

	graph, err := g.build(c)
	if err != nil {
		return err
	}

	return writeFile(path, func(w io.Writer) error {
		return graph.Render(provider, w)
	})
}

func (g *GoChart) build(c *Chart) (*chart.Chart, error) {
	if c.pointCount() == 0 {
		return nil, errors.New("go-chart cannot draw a chart without data points")
	}

	xMin, xMax, yMin, yMax := c.bounds()
	gridStyle := chart.Style{
		StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
		StrokeWidth: 1,
	}

	graph := &chart.Chart{
		Title:  c.Title,
		Width:  g.Width,
		Height: g.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
	}
	if c.Grid {
		graph.XAxis.GridMajorStyle = gridStyle
		graph.YAxis.GridMajorStyle = gridStyle
	}

	// Segments carry no name; the legend is drawn from one keyed series per
	// label so a line broken by missing values is listed once.
	legend := &chart.Chart{}
	for i, s := range c.Series {
		style := styles.ForSeries(i)
		seriesStyle := chart.Style{
			StrokeColor:     toDrawing(style.Color),
			StrokeWidth:     style.LineWidth,
			StrokeDashArray: style.Dashes,
			DotColor:        toDrawing(style.Color),
			DotWidth:        3,
		}

		for _, seg := range s.segments() {
			xs := make([]float64, len(seg))
			ys := make([]float64, len(seg))
			for j, pt := range seg {
				xs[j] = pt.X
				ys[j] = pt.Y
			}
			graph.Series = append(graph.Series, chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   seriesStyle,
			})
		}

		legend.Series = append(legend.Series, chart.ContinuousSeries{
			Name:  s.Label,
			Style: seriesStyle,
		})
	}

	if c.Legend {
		graph.Elements = []chart.Renderable{chart.Legend(legend)}
	}
	return graph, nil
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
