// Package main implements a tool to show distribution of values in a CSV column.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bool64/dev/version"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/profile"
	"github.com/vearutop/csvhist"
	"go.uber.org/zap"
)

func main() {
	os.Exit(start(os.Args[1:], os.Stdout, os.Stderr))
}

func startProfiling(profileType, profilePath string) (func(), error) {
	path := profile.ProfilePath(profilePath)

	switch profileType {
	case "cpu":
		return profile.Start(profile.CPUProfile, path, profile.NoShutdownHook).Stop, nil
	case "mem":
		return profile.Start(profile.MemProfile, path, profile.NoShutdownHook).Stop, nil
	case "block":
		return profile.Start(profile.BlockProfile, path, profile.NoShutdownHook).Stop, nil
	case "trace":
		return profile.Start(profile.TraceProfile, path, profile.NoShutdownHook).Stop, nil
	default:
		return nil, fmt.Errorf("unexpected -profile value '%s', options are (cpu,mem,block,trace)", profileType)
	}
}

// start runs the command and returns exit status, deferred cleanups are done by then.
func start(args []string, stdout, stderr io.Writer) int {
	fail := func(message string) int {
		fmt.Fprintln(stderr, message)

		return 1
	}

	flags := flag.NewFlagSet("csvhist", flag.ContinueOnError)
	flags.SetOutput(stderr)

	input := flags.String("input", "Extended_Employee_Performance_and_Productivity_Data.csv", "CSV file to load.")
	column := flags.String("column", "Performance_Score", "Column to count.")
	bins := flags.Int("bins", csvhist.DefaultBins, "Number of buckets.")
	text := flags.Bool("text", false, "Print text histogram instead of showing a chart.")
	printTable := flags.Bool("table", false, "Print loaded table instead of showing a chart.")
	viewer := flags.String("viewer", "", "Image viewer command, platform default if empty.")
	verbose := flags.Bool("v", false, "Enable development logging.")
	profileType := flags.String("profile", "", "Profiling mode (cpu,mem,block,trace).")
	profilePath := flags.String("profile-path", "", "Directory for profile files, temporary if empty.")
	ver := flags.Bool("version", false, "Print version.")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *ver {
		fmt.Fprintln(stdout, version.Info().Version)

		return 0
	}

	opts := options{
		inputPath:  *input,
		columnName: *column,
		binCount:   *bins,
		text:       *text,
		table:      *printTable,
		viewer:     csvhist.DefaultViewer(),
		chart:      csvhist.DefaultChart(),
	}

	if *viewer != "" {
		command, err := shellquote.Split(*viewer)
		if err != nil || len(command) == 0 {
			return fail(fmt.Sprintf("Invalid -viewer '%s'.", *viewer))
		}

		opts.viewer = csvhist.CommandViewer{Name: command[0], Args: command[1:]}
	}

	if *profileType != "" {
		stop, err := startProfiling(*profileType, *profilePath)
		if err != nil {
			return fail(err.Error())
		}

		defer stop()
	}

	logger := zap.NewNop()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fail(fmt.Sprintf("Failed to create logger: %s", err.Error()))
		}

		logger = l
	}

	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger, stdout); err != nil {
		return fail(err.Error())
	}

	return 0
}
