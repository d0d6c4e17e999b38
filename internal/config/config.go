// Package config loads converter settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds the knobs the converter exposes. Zero values are
// replaced by defaults after decoding, so a partial file is fine.
type Config struct {
	// TimezoneLabel is printed after the header timestamp. The
	// timestamp itself stays the recorded UTC instant.
	TimezoneLabel string `hcl:"timezone_label,optional"`

	// RoundingEpsilon is the tolerance, in minor currency units, for
	// stack and pot consistency checks.
	RoundingEpsilon int64 `hcl:"rounding_epsilon,optional"`

	// SeparatorBlankLines is the number of blank lines between hands
	// in the output file.
	SeparatorBlankLines int `hcl:"separator_blank_lines,optional"`

	// Workers caps concurrent hand conversions in a batch.
	Workers int `hcl:"workers,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		TimezoneLabel:       "UTC",
		RoundingEpsilon:     1,
		SeparatorBlankLines: 3,
		Workers:             runtime.GOMAXPROCS(0),
	}
}

// Load reads an HCL config file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.TimezoneLabel == "" {
		cfg.TimezoneLabel = def.TimezoneLabel
	}
	if cfg.RoundingEpsilon <= 0 {
		cfg.RoundingEpsilon = def.RoundingEpsilon
	}
	if cfg.SeparatorBlankLines <= 0 {
		cfg.SeparatorBlankLines = def.SeparatorBlankLines
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	return &cfg, nil
}
