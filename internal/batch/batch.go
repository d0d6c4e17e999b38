// Package batch drives conversion of multi-hand input files. Hands
// convert concurrently but the concatenated output preserves input
// order, and a failure on one hand never aborts the rest.
package batch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pokertools/ohh2stars/internal/config"
	"github.com/pokertools/ohh2stars/internal/ohh"
	"github.com/pokertools/ohh2stars/internal/position"
	"github.com/pokertools/ohh2stars/internal/render"
	"github.com/pokertools/ohh2stars/internal/timeline"
)

// HandError describes one hand that failed to convert.
type HandError struct {
	Index int // zero-based position in the input file
	Err   error
}

func (e HandError) Error() string {
	return fmt.Sprintf("hand %d: %v", e.Index+1, e.Err)
}

// Result is the outcome of converting one input file.
type Result struct {
	Output    string
	Converted int
	Failures  []HandError
	Warnings  []string
}

// Converter converts batches of OHH records.
type Converter struct {
	cfg    *config.Config
	logger *log.Logger
}

// New creates a batch converter.
func New(cfg *config.Config, logger *log.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Converter{cfg: cfg, logger: logger}
}

// Split divides raw multi-hand input into individual record chunks.
// Records are separated by blank lines.
func Split(raw []byte) [][]byte {
	var chunks [][]byte
	for _, chunk := range bytes.Split(bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n")), []byte("\n\n")) {
		chunk = bytes.TrimSpace(chunk)
		if len(chunk) > 0 {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

type handResult struct {
	text     string
	warnings []string
	err      error
}

// ConvertFile converts every record in raw and concatenates the
// successful outputs in input order, separated by blank lines.
func (c *Converter) ConvertFile(raw []byte) *Result {
	runID := uuid.NewString()
	chunks := Split(raw)
	logger := c.logger.With("run", runID, "hands", len(chunks))
	logger.Debug("starting batch conversion")

	results := make([]handResult, len(chunks))

	var g errgroup.Group
	g.SetLimit(c.cfg.Workers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			text, warnings, err := c.ConvertHand(chunk)
			results[i] = handResult{text: text, warnings: warnings, err: err}
			return nil
		})
	}
	// Workers never return errors; failures stay with their hand.
	_ = g.Wait()

	res := &Result{}
	var outputs []string
	for i, hr := range results {
		if hr.err != nil {
			res.Failures = append(res.Failures, HandError{Index: i, Err: hr.err})
			logger.Warn("skipping hand", "index", i+1, "error", hr.err)
			continue
		}
		for _, w := range hr.warnings {
			res.Warnings = append(res.Warnings, fmt.Sprintf("hand %d: %s", i+1, w))
			logger.Warn("conversion warning", "index", i+1, "warning", w)
		}
		outputs = append(outputs, hr.text)
		res.Converted++
	}

	separator := strings.Repeat("\n", c.cfg.SeparatorBlankLines+1)
	res.Output = strings.Join(outputs, separator)
	logger.Info("batch conversion complete", "converted", res.Converted, "failed", len(res.Failures))
	return res
}

// ConvertHand runs the full pipeline for a single record: parse,
// reconstruct, resolve positions, render.
func (c *Converter) ConvertHand(raw []byte) (string, []string, error) {
	h, err := ohh.Parse(raw)
	if err != nil {
		return "", nil, err
	}

	tl, err := timeline.Reconstruct(h, c.cfg.RoundingEpsilon)
	if err != nil {
		return "", nil, fmt.Errorf("hand %s: %w", h.HandID, err)
	}

	positions, err := position.Resolve(h.ButtonSeat, h.SeatNumbers())
	if err != nil {
		return "", nil, fmt.Errorf("hand %s: %w", h.HandID, err)
	}

	text, err := render.Render(h, tl, positions, render.Options{
		TimezoneLabel: c.cfg.TimezoneLabel,
	})
	if err != nil {
		return "", nil, fmt.Errorf("hand %s: %w", h.HandID, err)
	}
	return text, tl.Warnings, nil
}
