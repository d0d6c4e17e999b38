package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pokertools/ohh2stars/internal/batch"
	"github.com/pokertools/ohh2stars/internal/config"
	"github.com/pokertools/ohh2stars/internal/fileutil"
)

// ConvertCmd converts a file of OHH records to PokerStars text.
type ConvertCmd struct {
	Input    string `kong:"arg,help='Input file of OHH JSON records separated by blank lines (- for stdin)'"`
	Output   string `kong:"short='o',help='Output file (default: stdout)'"`
	Config   string `kong:"short='c',help='Path to HCL config file'"`
	Timezone string `kong:"help='Timezone label for the header timestamp (overrides config)'"`
	Workers  int    `kong:"help='Concurrent hand conversions (overrides config)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *ConvertCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.Timezone != "" {
		cfg.TimezoneLabel = c.Timezone
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}

	raw, err := readInput(c.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	res := batch.New(cfg, logger).ConvertFile(raw)
	for _, f := range res.Failures {
		logger.Error("hand failed", "index", f.Index+1, "error", f.Err)
	}
	if res.Converted == 0 {
		return errors.New("no hands converted")
	}

	if c.Output == "" {
		fmt.Println(res.Output)
	} else if err := fileutil.WriteFileAtomic(c.Output, []byte(res.Output+"\n"), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Info("done", "converted", res.Converted, "failed", len(res.Failures), "warnings", len(res.Warnings))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
