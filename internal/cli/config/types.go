// Package config provides configuration management for the exupdate CLI.
//
// Values come from built-in defaults, an optional exupdate.yaml, EXUPDATE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"github.com/leapstack-labs/exupdate/internal/cli/output"
	"github.com/leapstack-labs/exupdate/internal/extract"
	"github.com/leapstack-labs/exupdate/internal/sink"
)

// Config holds all CLI configuration options.
type Config struct {
	OutFile           string            `koanf:"out_file" yaml:"out_file" json:"out_file"`
	Sheet             string            `koanf:"sheet" yaml:"sheet" json:"sheet"`
	Format            string            `koanf:"format" yaml:"format" json:"format"`
	IDColumn          string            `koanf:"id_column" yaml:"id_column" json:"id_column"`
	DescriptionColumn string            `koanf:"description_column" yaml:"description_column" json:"description_column"`
	Preview           int               `koanf:"preview" yaml:"preview" json:"preview"`
	Verbose           bool              `koanf:"verbose" yaml:"verbose" json:"verbose"`
	OutputFormat      output.OutputMode `koanf:"output" yaml:"output" json:"output"`
}

// Default configuration values.
const (
	DefaultOutFile           = sink.DefaultFileName
	DefaultIDColumn          = extract.IDColumn
	DefaultDescriptionColumn = extract.DescriptionColumn
	DefaultOutput            = output.ModeAuto // Auto-detect: TTY=text, non-TTY=markdown
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		OutFile:           DefaultOutFile,
		IDColumn:          DefaultIDColumn,
		DescriptionColumn: DefaultDescriptionColumn,
		OutputFormat:      DefaultOutput,
	}
}
