package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"timing-report/internal/config"
	"timing-report/internal/logging"

	"github.com/spf13/cobra"
)

const Version = "1.0.0"

type flags struct {
	configFile    string
	input         string
	outputDir     string
	format        string
	renderer      string
	source        string
	display       string
	sortByWorkers bool
	logLevel      string
}

func Execute() error {
	config.LoadEnvironment()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "timing-report",
		Short: "Plot graph algorithm timings against worker count",
		Long: "Reads timing_results.csv and writes one line chart per algorithm " +
			"(bfs, dfs, pagerank, mst, shortest path), one line per node count.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f.logLevel != "" {
				if err := logging.SetLogLevel(f.logLevel); err != nil {
					return fmt.Errorf("invalid log level: %w", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return generateReport(cmd.Context(), cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", config.DefaultConfigFile, "Path to report configuration file")
	pf.StringVarP(&f.input, "input", "i", "", "Path to the timing results CSV")
	pf.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory the charts are written to")
	pf.StringVar(&f.format, "format", "", "Output format (png, svg, pdf, tex, ...)")
	pf.StringVar(&f.renderer, "renderer", "", "Chart backend (gonum, gochart, tikz)")
	pf.StringVar(&f.source, "source", "", "Dataset source (csv, influx)")
	pf.StringVar(&f.display, "display", "", "Show charts after writing (auto, open, none)")
	pf.BoolVar(&f.sortByWorkers, "sort-by-workers", false, "Sort each line by worker count instead of row order")
	pf.StringVar(&f.logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset without writing charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return validateDataset(cmd.Context(), cfg)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timing-report %s\n", Version)
		},
	}

	rootCmd.AddCommand(validateCmd, versionCmd)
	return rootCmd
}

// load reads the config file and lets explicitly set flags override it. The
// default config file may be absent; a file named with --config may not.
func (f *flags) load(cmd *cobra.Command) (*config.ReportConfig, error) {
	logger := logging.GetLogger()
	changed := cmd.Flags().Changed

	cfg, err := config.LoadConfig(f.configFile, !changed("config"))
	if err != nil {
		logger.WithField("config_file", f.configFile).WithError(err).Error("Failed to load configuration")
		return nil, err
	}

	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	} else if cfg.LogLevel != "" {
		if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log level in config: %w", err)
		}
	}
	if changed("input") {
		cfg.Source.Type = config.SourceCSV
		cfg.Source.CSV.Path = f.input
	}
	if changed("source") {
		cfg.Source.Type = f.source
	}
	if changed("output-dir") {
		cfg.Output.Dir = f.outputDir
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("renderer") {
		cfg.Output.Renderer = f.renderer
	}
	if changed("display") {
		cfg.Display = f.display
	}
	if changed("sort-by-workers") {
		cfg.Output.SortByWorkers = f.sortByWorkers
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
