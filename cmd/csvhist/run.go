package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vearutop/csvhist"
	"go.uber.org/zap"
)

type options struct {
	inputPath  string
	columnName string
	binCount   int

	text  bool
	table bool

	viewer csvhist.Viewer
	chart  csvhist.Chart
}

// run loads a table, selects a column, counts its values and shows the result.
func run(ctx context.Context, opts options, logger *zap.Logger, stdout io.Writer) error {
	start := time.Now()

	tab, err := csvhist.Load(opts.inputPath)
	if err != nil {
		return err
	}

	logger.Info("loaded table",
		zap.String("path", opts.inputPath),
		zap.Int("rows", tab.Len()),
		zap.Int("columns", len(tab.Columns())),
		zap.Duration("took", time.Since(start)))

	if opts.table {
		return tab.Fprint(stdout)
	}

	values, err := tab.Column(opts.columnName)
	if err != nil {
		return err
	}

	logger.Debug("selected column",
		zap.String("column", opts.columnName),
		zap.Stringer("kind", tab.Kind(opts.columnName)))

	hist, err := csvhist.New(values, opts.binCount)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.columnName, err)
	}

	logger.Info("counted values",
		zap.Int("count", hist.Count),
		zap.Int("skipped", hist.Skipped),
		zap.Float64("min", hist.Min),
		zap.Float64("max", hist.Max),
		zap.Float64("mean", hist.Mean()))

	if opts.text {
		printText(stdout, hist)

		return nil
	}

	start = time.Now()

	if err := csvhist.Show(ctx, opts.viewer, opts.chart, hist); err != nil {
		return err
	}

	logger.Debug("viewer closed", zap.Duration("took", time.Since(start)))

	return nil
}

func printText(w io.Writer, hist *csvhist.Histogram) {
	fmt.Fprint(w, hist.PercentileString(99.9, 99, 90, 75, 50))
	fmt.Fprintln(w)
	fmt.Fprint(w, hist.String())
}
