package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/profile"

	"crosswarped.com/springs"
	"crosswarped.com/springs/internal/ctxlog"
)

func main() {
	file := flag.String("file", "", "The file to load condition records from (default stdin)")
	unfold := flag.Int("unfold", springs.DefaultUnfold, "How many copies make up an unfolded record")
	workers := flag.Int("workers", 1, "How many records to count at once")
	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for counting all records")

	profileMode := flag.String("profile", "", "Profile the solver: cpu or mem")
	profileDir := flag.String("profile-dir", ".", "The directory to write profiles to")

	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")

	flag.Parse()

	logger := ctxlog.New(*logLevel, *logFormat, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	default:
		fmt.Fprintf(os.Stderr, "Unknown -profile mode %q\n", *profileMode)
		os.Exit(1)
	}

	records, err := loadRecords(*file)
	if err != nil {
		logger.Error("loading records", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded records", "count", len(records))

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	solver := springs.Solver{Unfold: *unfold, Workers: *workers}
	report, err := solver.Solve(ctx, records)
	if err != nil {
		logger.Error("solving records", "error", err)
		os.Exit(1)
	}

	if _, err := report.WriteTo(os.Stdout); err != nil {
		logger.Error("writing report", "error", err)
		os.Exit(1)
	}
}

func loadRecords(path string) ([]springs.Record, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return springs.ParseRecords(r)
}
