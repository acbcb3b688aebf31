package cmd

import (
	"context"
	"fmt"

	"timing-report/internal/config"
	"timing-report/internal/logging"
	"timing-report/internal/report"

	"github.com/sirupsen/logrus"
)

func generateReport(ctx context.Context, cfg *config.ReportConfig) error {
	logger := logging.GetLogger()
	logger.WithFields(logrus.Fields{
		"source":   cfg.Source.Type,
		"renderer": cfg.Output.Renderer,
		"format":   cfg.Output.Format,
		"dir":      cfg.Output.Dir,
	}).Debug("Generating report")

	mgr, err := report.NewManager(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to create report manager")
		return fmt.Errorf("failed to create report manager: %w", err)
	}
	defer mgr.Close()

	result, err := mgr.GenerateReport(ctx)
	if err != nil {
		if result != nil && len(result.Files) > 0 {
			logger.WithField("written", len(result.Files)).Warn("Report incomplete")
		}
		return fmt.Errorf("failed to generate report: %w", err)
	}

	logger.WithField("charts", len(result.Files)).Info("Report generated successfully")
	return nil
}

func validateDataset(ctx context.Context, cfg *config.ReportConfig) error {
	logger := logging.GetLogger()

	mgr, err := report.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create report manager: %w", err)
	}
	defer mgr.Close()

	summary, err := mgr.Validate(ctx)
	if summary != nil {
		logger.WithFields(logrus.Fields{
			"rows":       summary.Rows,
			"node_sizes": summary.NodeSizes,
			"checksum":   summary.Checksum,
		}).Info("Dataset summary")
		if len(summary.MissingColumns) > 0 {
			logger.WithField("columns", summary.MissingColumns).Warn("Dataset is missing columns")
		}
	}
	if err != nil {
		logger.WithError(err).Error("Dataset validation failed")
		return err
	}

	logger.Info("Dataset is valid")
	return nil
}
