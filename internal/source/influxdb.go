package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"timing-report/internal/config"
	"timing-report/internal/dataset"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/sirupsen/logrus"
)

// Influx reads timing rows that the benchmark driver stored in InfluxDB v2.
// Each point carries nodes, workers and the five durations as fields; rows
// come back in write order.
type Influx struct {
	client      influxdb2.Client
	queryAPI    api.QueryAPI
	bucket      string
	measurement string
	start       string
	run         string
	logger      *logrus.Logger
}

func NewInflux(cfg config.InfluxConfig, logger *logrus.Logger) (*Influx, error) {
	if cfg.Host == "" || cfg.Token == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing InfluxDB connection settings")
	}

	client := influxdb2.NewClient(cfg.Host, cfg.Token)

	start := cfg.Start
	if start == "" {
		start = "0"
	}

	return &Influx{
		client:      client,
		queryAPI:    client.QueryAPI(cfg.Org),
		bucket:      cfg.Bucket,
		measurement: cfg.Measurement,
		start:       start,
		run:         cfg.Run,
		logger:      logger,
	}, nil
}

func (s *Influx) Close() {
	s.client.Close()
}

func (s *Influx) Load(ctx context.Context) (*dataset.Table, error) {
	s.logger.WithFields(logrus.Fields{
		"bucket":      s.bucket,
		"measurement": s.measurement,
		"run":         s.run,
	}).Debug("Querying timing results")

	result, err := s.queryAPI.Query(ctx, buildQuery(s.bucket, s.measurement, s.start, s.run))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer result.Close()

	var measurements []dataset.Measurement
	for result.Next() {
		m, err := measurementFromValues(result.Record().Values())
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(measurements), err)
		}
		measurements = append(measurements, m)
	}

	if result.Err() != nil {
		return nil, fmt.Errorf("query parsing failed: %w", result.Err())
	}

	s.logger.WithField("rows", len(measurements)).Debug("Query completed")
	return dataset.FromMeasurements(measurements)
}

func buildQuery(bucket, measurement, start, run string) string {
	fieldFilters := make([]string, 0, len(dataset.RequiredColumns))
	for _, column := range dataset.RequiredColumns {
		fieldFilters = append(fieldFilters, fmt.Sprintf(`r["_field"] == "%s"`, column))
	}

	var runFilter string
	if run != "" {
		runFilter = fmt.Sprintf("\n\t\t|> filter(fn: (r) => r[\"run\"] == \"%s\")", run)
	}

	return fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "%s")%s
		|> filter(fn: (r) => %s)
		|> pivot(rowKey:["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group()
		|> sort(columns: ["_time"])
	`, bucket, start, measurement, runFilter, strings.Join(fieldFilters, " or "))
}

func measurementFromValues(values map[string]interface{}) (dataset.Measurement, error) {
	get := func(column string) (float64, error) {
		raw, ok := values[column]
		if !ok || raw == nil {
			return 0, fmt.Errorf("%w %q", dataset.ErrMissingColumn, column)
		}
		v, err := toFloat64(raw)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", column, err)
		}
		return v, nil
	}

	var m dataset.Measurement
	var err error
	var nodes, workers float64

	if nodes, err = get(dataset.ColumnNodes); err != nil {
		return m, err
	}
	if workers, err = get(dataset.ColumnWorkers); err != nil {
		return m, err
	}
	m.Nodes = int64(nodes)
	m.Workers = int64(workers)

	for _, f := range []struct {
		column string
		dst    *float64
	}{
		{dataset.ColumnBFSTime, &m.BFSTime},
		{dataset.ColumnDFSTime, &m.DFSTime},
		{dataset.ColumnPageRankTime, &m.PageRankTime},
		{dataset.ColumnMSTTime, &m.MSTTime},
		{dataset.ColumnShortestPathTime, &m.ShortestPathTime},
	} {
		if *f.dst, err = get(f.column); err != nil {
			return dataset.Measurement{}, err
		}
	}

	return m, nil
}

// nodes and workers may arrive as tags (strings) or fields (numbers).
func toFloat64(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", val)
	}
}
