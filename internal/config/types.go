package config

const (
	SourceCSV    = "csv"
	SourceInflux = "influx"

	RendererGonum   = "gonum"
	RendererGoChart = "gochart"
	RendererTikZ    = "tikz"

	DisplayAuto = "auto"
	DisplayOpen = "open"
	DisplayNone = "none"
)

// DefaultConfigFile is read when present; a run without it uses Default().
const DefaultConfigFile = "timing-report.yaml"

type ReportConfig struct {
	LogLevel string       `yaml:"log_level"`
	Source   SourceConfig `yaml:"source"`
	Output   OutputConfig `yaml:"output"`
	Display  string       `yaml:"display"`
}

type SourceConfig struct {
	Type   string       `yaml:"type"`
	CSV    CSVConfig    `yaml:"csv"`
	Influx InfluxConfig `yaml:"influx"`
}

type CSVConfig struct {
	Path string `yaml:"path"`
}

type InfluxConfig struct {
	Host        string `yaml:"host"`
	Token       string `yaml:"token"`
	Org         string `yaml:"org"`
	Bucket      string `yaml:"bucket"`
	Measurement string `yaml:"measurement"`
	Start       string `yaml:"start"`
	Run         string `yaml:"run,omitempty"`
}

type OutputConfig struct {
	Dir           string  `yaml:"dir"`
	Format        string  `yaml:"format"`
	Renderer      string  `yaml:"renderer"`
	WidthInches   float64 `yaml:"width_in"`
	HeightInches  float64 `yaml:"height_in"`
	SortByWorkers bool    `yaml:"sort_by_workers"`
}

// Default reproduces the plain invocation: timing_results.csv in, one PNG
// per metric in the working directory.
func Default() *ReportConfig {
	return &ReportConfig{
		LogLevel: "info",
		Source: SourceConfig{
			Type: SourceCSV,
			CSV:  CSVConfig{Path: "timing_results.csv"},
			Influx: InfluxConfig{
				Measurement: "timing_results",
				Start:       "0",
			},
		},
		Output: OutputConfig{
			Dir:          ".",
			Format:       "png",
			Renderer:     RendererGonum,
			WidthInches:  6.4,
			HeightInches: 4.8,
		},
		Display: DisplayAuto,
	}
}
