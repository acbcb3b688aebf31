package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"timing-report/internal/dataset"
	"timing-report/internal/display"
	"timing-report/internal/render"

	"github.com/sirupsen/logrus"
)

type Generator struct {
	renderer  render.Renderer
	presenter display.Presenter
	logger    *logrus.Logger
	opts      Options
}

type Options struct {
	OutputDir     string
	Format        string
	SortByWorkers bool
}

// Result lists the written chart files in catalog order.
type Result struct {
	Files []string
}

func NewGenerator(renderer render.Renderer, presenter display.Presenter, logger *logrus.Logger, opts Options) *Generator {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	return &Generator{
		renderer:  renderer,
		presenter: presenter,
		logger:    logger,
		opts:      opts,
	}
}

// OutputPath is where the chart for metric is written.
func (g *Generator) OutputPath(metric Metric) string {
	return filepath.Join(g.opts.OutputDir, metric.Field+"."+g.opts.Format)
}

// Generate renders one chart per catalog metric, strictly in order. The
// first error stops the run; charts already written stay on disk and are
// listed in the returned Result.
func (g *Generator) Generate(ctx context.Context, table *dataset.Table) (*Result, error) {
	groups, err := table.GroupBy(dataset.ColumnNodes)
	if err != nil {
		return nil, err
	}
	workers, err := table.Float64s(dataset.ColumnWorkers)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"rows":       table.Len(),
		"node_sizes": len(groups),
		"metrics":    len(Catalog),
	}).Info("Generating timing report")

	result := &Result{}
	for _, metric := range Catalog {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		chart, err := BuildChart(table, metric, groups, workers, g.opts.SortByWorkers)
		if err != nil {
			return result, fmt.Errorf("%s: %w", metric.Field, err)
		}

		path := g.OutputPath(metric)
		if err := g.renderer.Render(ctx, chart, path); err != nil {
			return result, fmt.Errorf("failed to render %s: %w", path, err)
		}
		result.Files = append(result.Files, path)

		g.logger.WithFields(logrus.Fields{
			"metric": metric.Field,
			"file":   path,
			"series": len(chart.Series),
		}).Info("Chart written")

		if err := g.presenter.Present(ctx, path); err != nil {
			g.logger.WithField("file", path).WithError(err).Warn("Failed to display chart, continuing")
		}
	}

	return result, nil
}

// BuildChart lays out one metric: a series per node-size group in ascending
// order, points in table order unless sortByWorkers is set.
func BuildChart(table *dataset.Table, metric Metric, groups []dataset.Group, workers []float64, sortByWorkers bool) (*render.Chart, error) {
	values, err := table.Float64s(metric.Field)
	if err != nil {
		return nil, err
	}

	chart := &render.Chart{
		Title:  metric.Title,
		XLabel: XAxisLabel,
		YLabel: YAxisLabel,
		Legend: true,
		Grid:   true,
		Series: make([]render.Series, 0, len(groups)),
	}

	for _, group := range groups {
		points := make([]render.Point, 0, len(group.Rows))
		for _, row := range group.Rows {
			points = append(points, render.Point{X: workers[row], Y: values[row]})
		}
		if sortByWorkers {
			sort.SliceStable(points, func(i, j int) bool {
				return points[i].X < points[j].X
			})
		}

		chart.Series = append(chart.Series, render.Series{
			Label:  SeriesLabel(group.Key),
			Points: points,
		})
	}

	return chart, nil
}

func SeriesLabel(nodes float64) string {
	return strconv.FormatFloat(nodes, 'f', -1, 64) + " nodes"
}
