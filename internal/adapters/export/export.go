// Package export serializes a draft board to CSV, JSON and XLSX files.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/draftboard/internal/domain/board"
	"github.com/okian/draftboard/pkg/logger"
)

// Paths lists the files written for one board.
type Paths struct {
	CSV  string
	JSON string
	XLSX string
}

// Exporter writes boards below an output directory.
type Exporter struct {
	outputDir string
	xlsx      bool
	logger    logger.Logger
}

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithXLSX enables the spreadsheet output.
func WithXLSX(enabled bool) Option {
	return func(e *Exporter) {
		e.xlsx = enabled
	}
}

// WithLogger sets a custom logger for the exporter.
func WithLogger(log logger.Logger) Option {
	return func(e *Exporter) {
		if log != nil {
			e.logger = log
		}
	}
}

// New returns an Exporter writing to outputDir.
func New(outputDir string, opts ...Option) *Exporter {
	e := &Exporter{outputDir: outputDir, logger: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PathsFor returns the output paths for a season.
func (e *Exporter) PathsFor(season int) Paths {
	base := filepath.Join(e.outputDir, fmt.Sprintf("Projections-%d", season))
	p := Paths{CSV: base + ".csv", JSON: base + ".json"}
	if e.xlsx {
		p.XLSX = base + ".xlsx"
	}
	return p
}

// Write serializes b to every enabled format. Files are replaced atomically.
func (e *Exporter) Write(ctx context.Context, b *board.Board) (Paths, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	p := e.PathsFor(b.Season)
	if err := writeAtomic(p.CSV, func(w io.Writer) error { return WriteCSV(w, b) }); err != nil {
		return Paths{}, err
	}
	if err := writeAtomic(p.JSON, func(w io.Writer) error { return WriteJSON(w, b) }); err != nil {
		return Paths{}, err
	}
	if p.XLSX != "" {
		if err := WriteXLSX(p.XLSX, b); err != nil {
			return Paths{}, err
		}
	}
	e.logger.Info(ctx, "board written",
		logger.String("csv", p.CSV), logger.String("json", p.JSON),
		logger.String("xlsx", p.XLSX), logger.Int("rows", len(b.Rows)))
	return p, nil
}

func writeAtomic(path string, fn func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := fn(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
