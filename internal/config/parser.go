package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"timing-report/internal/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var gonumFormats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "eps": true,
	"jpg": true, "jpeg": true, "tif": true, "tiff": true,
}

var goChartFormats = map[string]bool{
	"png": true, "svg": true,
}

var tikzFormats = map[string]bool{
	"tex": true,
}

// LoadConfig reads a YAML file on top of Default(). When optional is set a
// missing file is not an error.
func LoadConfig(path string, optional bool) (*ReportConfig, error) {
	logger := logging.GetLogger()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			logger.WithField("filepath", path).Debug("No config file, using defaults")
			applyEnvironment(cfg)
			return cfg, nil
		}
		logger.WithField("filepath", path).WithError(err).Error("Failed to read config file")
		return nil, err
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		logger.WithField("filepath", path).WithError(err).Error("Failed to parse config file")
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	applyEnvironment(cfg)
	return cfg, nil
}

// LoadEnvironment loads a .env file from the working directory, falling back
// to the directory of the executable.
func LoadEnvironment() {
	logger := logging.GetLogger()

	envFile := ".env"
	if _, err := os.Stat(envFile); err != nil {
		execPath, err := os.Executable()
		if err != nil {
			return
		}
		envFile = filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(envFile); err != nil {
			return
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
	} else {
		logger.WithField("file", envFile).Debug("Loaded environment variables")
	}
}

func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

// InfluxDB connection settings fall back to the same variables the
// benchmark driver exports.
func applyEnvironment(cfg *ReportConfig) {
	influx := &cfg.Source.Influx
	fill := func(dst *string, name string) {
		if *dst == "" {
			*dst = os.Getenv(name)
		}
	}
	fill(&influx.Host, "INFLUXDB_HOST")
	fill(&influx.Token, "INFLUXDB_TOKEN")
	fill(&influx.Org, "INFLUXDB_ORG")
	fill(&influx.Bucket, "INFLUXDB_BUCKET")
}

func Validate(cfg *ReportConfig) error {
	cfg.Output.Format = strings.ToLower(strings.TrimPrefix(cfg.Output.Format, "."))

	switch cfg.Output.Renderer {
	case RendererGonum:
		if !gonumFormats[cfg.Output.Format] {
			return fmt.Errorf("renderer %s cannot write format %q", cfg.Output.Renderer, cfg.Output.Format)
		}
	case RendererGoChart:
		if !goChartFormats[cfg.Output.Format] {
			return fmt.Errorf("renderer %s cannot write format %q", cfg.Output.Renderer, cfg.Output.Format)
		}
	case RendererTikZ:
		if !tikzFormats[cfg.Output.Format] {
			return fmt.Errorf("renderer %s cannot write format %q", cfg.Output.Renderer, cfg.Output.Format)
		}
	default:
		return fmt.Errorf("unknown renderer %q", cfg.Output.Renderer)
	}

	if cfg.Output.WidthInches <= 0 || cfg.Output.HeightInches <= 0 {
		return fmt.Errorf("image size must be positive, got %vx%v inches", cfg.Output.WidthInches, cfg.Output.HeightInches)
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}

	switch cfg.Display {
	case DisplayAuto, DisplayOpen, DisplayNone:
	default:
		return fmt.Errorf("unknown display mode %q", cfg.Display)
	}

	switch cfg.Source.Type {
	case SourceCSV:
		if cfg.Source.CSV.Path == "" {
			return fmt.Errorf("csv source requires a path")
		}
	case SourceInflux:
		db := cfg.Source.Influx
		if db.Host == "" || db.Token == "" || db.Org == "" || db.Bucket == "" {
			return fmt.Errorf("incomplete influx configuration: host, token, org and bucket are required")
		}
		if db.Measurement == "" {
			return fmt.Errorf("influx source requires a measurement")
		}
	default:
		return fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}

	return nil
}
