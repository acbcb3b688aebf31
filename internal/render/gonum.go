package render

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"timing-report/internal/render/styles"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Gonum renders charts with gonum.org/v1/plot.
type Gonum struct {
	Width  vg.Length
	Height vg.Length
}

func NewGonum(opts Options) *Gonum {
	return &Gonum{
		Width:  vg.Length(opts.WidthInches) * vg.Inch,
		Height: vg.Length(opts.HeightInches) * vg.Inch,
	}
}

func (g *Gonum) Render(ctx context.Context, c *Chart, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.checkPoints(); err != nil {
		return err
	}

	p, err := g.build(c)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(g.Width, g.Height, formatOf(path))
	if err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}

	return writeFile(path, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}

func (g *Gonum) build(c *Chart) (*plot.Plot, error) {
	p := plot.New()

	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	if c.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = color.Gray{200}
		grid.Horizontal.Color = color.Gray{200}
		p.Add(grid)
	}

	for i, s := range c.Series {
		style := styles.ForSeries(i)
		lineStyle := draw.LineStyle{
			Color: style.Color,
			Width: vg.Points(style.LineWidth),
		}
		for _, d := range style.Dashes {
			lineStyle.Dashes = append(lineStyle.Dashes, vg.Points(d))
		}

		var drawn plotter.XYs
		for _, seg := range s.segments() {
			xys := toXYs(seg)
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", s.Label, err)
			}
			line.LineStyle = lineStyle
			p.Add(line)
			drawn = append(drawn, xys...)
		}

		points, err := plotter.NewScatter(drawn)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Label, err)
		}
		points.GlyphStyle = draw.GlyphStyle{
			Color:  style.Color,
			Radius: vg.Points(2.5),
			Shape:  glyphFor(style.Marker),
		}
		p.Add(points)

		if c.Legend {
			key, err := plotter.NewLine(plotter.XYs{})
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", s.Label, err)
			}
			key.LineStyle = lineStyle
			p.Legend.Add(s.Label, key, points)
		}
	}

	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter

	return p, nil
}

func toXYs(points []Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}

func glyphFor(m styles.Marker) draw.GlyphDrawer {
	switch m {
	case styles.MarkerSquare:
		return draw.BoxGlyph{}
	case styles.MarkerTriangle:
		return draw.TriangleGlyph{}
	case styles.MarkerDiamond:
		return draw.PyramidGlyph{}
	case styles.MarkerCross:
		return draw.CrossGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}
