package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"timing-report/internal/render/styles"
	plotTemplate "timing-report/internal/render/templates"
)

// TikZ writes pgfplots source for inclusion in a LaTeX document.
type TikZ struct {
	Width  float64
	Height float64
	now    func() time.Time
}

func NewTikZ(opts Options) *TikZ {
	return &TikZ{
		Width:  opts.WidthInches,
		Height: opts.HeightInches,
		now:    time.Now,
	}
}

var (
	plotTmpl    = template.Must(template.New("plot").Parse(plotTemplate.PlotTemplate))
	wrapperTmpl = template.Must(template.New("wrapper").Parse(plotTemplate.WrapperTemplate))
)

// WrapperPath is the figure file written next to the picture at path. It
// \input's the picture and adds caption and label.
func WrapperPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "-figure.tex"
}

func (t *TikZ) Render(ctx context.Context, c *Chart, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.checkPoints(); err != nil {
		return err
	}
	if format := formatOf(path); format != "tex" {
		return fmt.Errorf("tikz cannot write format %q", format)
	}

	data := t.preparePlotData(c)
	wrapper := t.prepareWrapperData(c, path)

	if err := writeFile(path, func(w io.Writer) error {
		if err := plotTmpl.Execute(w, data); err != nil {
			return fmt.Errorf("failed to execute plot template: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	return writeFile(WrapperPath(path), func(w io.Writer) error {
		if err := wrapperTmpl.Execute(w, wrapper); err != nil {
			return fmt.Errorf("failed to execute wrapper template: %w", err)
		}
		return nil
	})
}

func (t *TikZ) prepareWrapperData(c *Chart, path string) *plotTemplate.WrapperData {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title := escapeTeX(c.Title)
	return &plotTemplate.WrapperData{
		GeneratedDate: t.now().Format("2006-01-02 15:04:05"),
		PlotFileName:  name,
		ShortCaption:  title,
		Caption:       title + " by number of workers.",
		Label:         name,
	}
}

func (t *TikZ) preparePlotData(c *Chart) *plotTemplate.PlotData {
	xMin, xMax, yMin, yMax := c.bounds()

	data := &plotTemplate.PlotData{
		GeneratedDate: t.now().Format("2006-01-02 15:04:05"),
		Title:         escapeTeX(c.Title),
		XLabel:        escapeTeX(c.XLabel),
		YLabel:        escapeTeX(c.YLabel),
		Width:         formatNumber(t.Width),
		Height:        formatNumber(t.Height),
		XMin:          formatNumber(xMin),
		XMax:          formatNumber(xMax),
		YMin:          formatNumber(yMin),
		YMax:          formatNumber(yMax),
		Grid:          c.Grid,
		Legend:        c.Legend,
	}

	for i, s := range c.Series {
		series := plotTemplate.PlotSeries{
			Style:       styles.ForSeries(i).TikZOptions(),
			LegendEntry: escapeTeX(s.Label),
		}
		for _, pt := range s.Points {
			series.Coordinates = append(series.Coordinates, coordinate(pt))
		}
		data.Plots = append(data.Plots, series)
	}
	return data
}

// coordinate writes a missing value as nan; the axis jumps over it.
func coordinate(pt Point) string {
	if pt.missing() {
		return fmt.Sprintf("(%s,%s)", tikzValue(pt.X), tikzValue(pt.Y))
	}
	return fmt.Sprintf("(%.6f,%.6f)", pt.X, pt.Y)
}

func tikzValue(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.6f", v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`_`, `\_`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
	`$`, `\$`,
	`{`, `\{`,
	`}`, `\}`,
)

func escapeTeX(s string) string {
	return texEscaper.Replace(s)
}
