package report

import (
	"context"
	"fmt"

	"timing-report/internal/config"
	"timing-report/internal/dataset"
	"timing-report/internal/display"
	"timing-report/internal/logging"
	"timing-report/internal/render"
	"timing-report/internal/source"

	"github.com/sirupsen/logrus"
)

type Manager struct {
	source    source.Source
	generator *Generator
	logger    *logrus.Logger
}

// Summary describes a dataset without rendering it.
type Summary struct {
	Rows           int
	NodeSizes      []float64
	MissingColumns []string
	Checksum       string
}

func NewManager(cfg *config.ReportConfig) (*Manager, error) {
	logger := logging.GetLogger()

	src, err := source.New(cfg.Source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	renderer, err := render.New(cfg.Output.Renderer, render.Options{
		WidthInches:  cfg.Output.WidthInches,
		HeightInches: cfg.Output.HeightInches,
	})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	generator := NewGenerator(renderer, display.New(cfg.Display, logger), logger, Options{
		OutputDir:     cfg.Output.Dir,
		Format:        cfg.Output.Format,
		SortByWorkers: cfg.Output.SortByWorkers,
	})

	return &Manager{
		source:    src,
		generator: generator,
		logger:    logger,
	}, nil
}

func (m *Manager) Close() {
	if m.source != nil {
		m.source.Close()
	}
}

func (m *Manager) GenerateReport(ctx context.Context) (*Result, error) {
	table, err := m.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return m.generator.Generate(ctx, table)
}

// Validate loads the dataset and checks that every column is present and
// numeric. The returned Summary is filled as far as the checks got.
func (m *Manager) Validate(ctx context.Context) (*Summary, error) {
	table, err := m.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return Summarize(table)
}

func Summarize(table *dataset.Table) (*Summary, error) {
	summary := &Summary{
		Rows:           table.Len(),
		MissingColumns: table.MissingColumns(dataset.RequiredColumns...),
	}

	checksum, err := table.Checksum()
	if err != nil {
		return summary, err
	}
	summary.Checksum = checksum

	if table.HasColumn(dataset.ColumnNodes) {
		sizes, err := table.NodeSizes()
		if err != nil {
			return summary, err
		}
		summary.NodeSizes = sizes
	}

	if _, err := table.Measurements(); err != nil {
		return summary, err
	}
	return summary, nil
}
