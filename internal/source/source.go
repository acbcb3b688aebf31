package source

import (
	"context"
	"fmt"

	"timing-report/internal/config"
	"timing-report/internal/dataset"

	"github.com/sirupsen/logrus"
)

// Source produces the timing dataset for one run.
type Source interface {
	Load(ctx context.Context) (*dataset.Table, error)
	Close()
}

func New(cfg config.SourceConfig, logger *logrus.Logger) (Source, error) {
	switch cfg.Type {
	case config.SourceCSV:
		return NewCSV(cfg.CSV.Path, logger), nil
	case config.SourceInflux:
		return NewInflux(cfg.Influx, logger)
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}

type CSV struct {
	Path   string
	logger *logrus.Logger
}

func NewCSV(path string, logger *logrus.Logger) *CSV {
	return &CSV{Path: path, logger: logger}
}

func (s *CSV) Load(ctx context.Context) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := dataset.LoadCSV(s.Path)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"file":    s.Path,
		"rows":    table.Len(),
		"columns": table.Columns(),
	}
	if checksum, err := table.Checksum(); err != nil {
		s.logger.WithError(err).Debug("Failed to compute dataset checksum")
	} else {
		fields["checksum"] = checksum
	}
	s.logger.WithFields(fields).Debug("Loaded timing dataset")

	return table, nil
}

func (s *CSV) Close() {}
