// Package config loads extractor settings from defaults, an optional YAML
// file, and environment variables.
package config

// Config holds the user-tunable extraction settings.
type Config struct {
	// InputFolder is the root scanned for DICOM files or archives.
	InputFolder string `koanf:"input_folder"`

	// FromArchives switches discovery to the one-match-per-zip strategy.
	FromArchives bool `koanf:"from_archives"`

	// SearchTexts are the series-description substrings used in archive
	// mode, one discovery pass each (e.g. stress then rest).
	SearchTexts []string `koanf:"search_texts"`

	// Indicators and FallbackIndicators drive the folder-mode predicate.
	Indicators         []string `koanf:"indicators"`
	FallbackIndicators []string `koanf:"fallback_indicators"`

	OutputCSV  string `koanf:"output_csv"`
	ReportFile string `koanf:"report_file"`
	ErrorLog   string `koanf:"error_log"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		FromArchives:       false,
		SearchTexts:        []string{"stress", "rest"},
		Indicators:         []string{"stress", "perf"},
		FallbackIndicators: []string{"perf"},
		OutputCSV:          "metadata_cmr_dicom.csv",
	}
}
