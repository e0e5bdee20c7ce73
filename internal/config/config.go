package config

import (
	"embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed pipeline.yaml
var defaultYAML embed.FS

// Config holds the full pipeline configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Database  DatabaseConfig  `yaml:"database"`
}

// InputConfig locates the cleaned JSON records and the optional corrected
// overlays.
type InputConfig struct {
	Dir          string `yaml:"dir"`
	CorrectedDir string `yaml:"corrected_dir,omitempty"`
}

// OutputConfig locates the dataset file and the analysis report.
type OutputConfig struct {
	Dir            string `yaml:"dir"`
	AnalysisSubdir string `yaml:"analysis_subdir,omitempty"` // default: analysis
}

// ReconcileConfig mirrors the currency-reconciliation constants. Defaults
// match the original deployment and matter for test compatibility.
type ReconcileConfig struct {
	ReferenceCurrency string  `yaml:"reference_currency"`
	ReferenceMarker   string  `yaml:"reference_marker"`
	USDMarker         string  `yaml:"usd_marker"`
	ExchangeRate      float64 `yaml:"exchange_rate"`
	MinPrice          float64 `yaml:"min_price"`
	MaxPrice          float64 `yaml:"max_price"`
	SegmentSeparator  string  `yaml:"segment_separator"`
}

// DatabaseConfig enables the optional warehouse sink. The URL may reference
// environment variables (e.g. ${DATABASE_URL}).
type DatabaseConfig struct {
	URL string `yaml:"url,omitempty"`
}

// Load reads the embedded pipeline.yaml and, when path is non-empty, the
// file at path instead. Environment variables inside the YAML are expanded
// before parsing.
func Load(path string) (*Config, error) {
	data, err := defaultYAML.ReadFile("pipeline.yaml")
	if path != "" {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	if cfg.Output.AnalysisSubdir == "" {
		cfg.Output.AnalysisSubdir = "analysis"
	}
	return &cfg, nil
}
