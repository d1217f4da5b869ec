// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds HTTP settings used when the input dump is a URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout, which
	// suits multi-gigabyte dumps.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "infobox-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 and 503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SourceConfig describes where the markup dump is read from.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Input is a local path or an http(s) URL. Paths ending in .bz2 or .gz
	// are decompressed while reading.
	Input string `json:"input" yaml:"input" mapstructure:"input"`
}

// SchemaConfig locates the schema facts.
type SchemaConfig struct {
	// Path is a YAML file of schema facts.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// OutputFormat selects how extracted facts are written.
type OutputFormat string

const (
	FormatSQLite OutputFormat = "sqlite"
	FormatTSV    OutputFormat = "tsv"
)

// StoreConfig holds settings for the fact output.
type StoreConfig struct {
	// OutputDir receives facts.db (sqlite) or one <theme>.tsv per theme.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Format selects the output format: sqlite or tsv.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ExtractionConfig groups the settings of one extraction run.
type ExtractionConfig struct {
	Source SourceConfig `json:"source" yaml:"source" mapstructure:"source"`
	Schema SchemaConfig `json:"schema" yaml:"schema" mapstructure:"schema"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`

	// ProgressEvery prints a progress line every N pages (0 disables).
	ProgressEvery int `json:"progress_every" yaml:"progress_every" mapstructure:"progress_every"`
}

// DefaultExtractionConfig returns the settings used when no config file
// or flag overrides them.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		Source: SourceConfig{
			HTTPConfig: HTTPConfig{
				UserAgent:  "infobox-engine/0.1",
				MaxRetries: 5,
			},
		},
		Schema: SchemaConfig{Path: "schema/infobox.yaml"},
		Store: StoreConfig{
			OutputDir:  "facts",
			Format:     FormatSQLite,
			MaxResults: 50,
		},
		ProgressEvery: 100000,
	}
}
