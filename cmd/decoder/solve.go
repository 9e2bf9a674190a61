package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/dherreraa1/puzzle-decoder-race/internal/archive"
	"github.com/dherreraa1/puzzle-decoder-race/internal/config"
	"github.com/dherreraa1/puzzle-decoder-race/internal/progress"
	"github.com/dherreraa1/puzzle-decoder-race/internal/solver"
)

// runSolve discovers the puzzle fragments behind a remote service and prints
// the assembled message to stdout. Optionally archives the result to object
// storage.
func runSolve(args []string) int {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)

	url := fs.String("url", "", "Fragment service base URL (required)")
	configPath := fs.String("config", "", "Path to YAML configuration file")
	maxConcurrent := fs.Int("max-concurrent", 0, "Max concurrent fragment requests")
	timeout := fs.Duration("timeout", 0, "Per-request timeout")
	sampleSize := fs.Int("sample-size", 0, "Random identifiers sampled during discovery")
	sampleRange := fs.Int("sample-range", 0, "Upper bound of the discovery sample range")
	gapRange := fs.Int("gap-range", 0, "Upper bound of the gap-filling sweep")
	giveUp := fs.Int("give-up", 0, "Consecutive empty windows before giving up")
	bucket := fs.String("bucket", "", "Bucket URL for archiving the solved message")
	object := fs.String("object", "", "Object path for the archived message")
	showProgress := fs.Bool("progress", false, "Show progress output")
	showEvents := fs.Bool("events", false, "Emit structured JSON events to stderr")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: decoder solve [options]

Probe a fragment service, reassemble the hidden message, and print it.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	cfg = cfg.Merge(config.Config{
		BaseURL:         *url,
		MaxConcurrent:   *maxConcurrent,
		Timeout:         *timeout,
		SampleSize:      *sampleSize,
		SampleRange:     *sampleRange,
		GapRange:        *gapRange,
		GiveUpThreshold: *giveUp,
		Bucket:          *bucket,
		Object:          *object,
		Progress:        *showProgress,
		Events:          *showEvents,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[decoder] Received interrupt, shutting down...")
		cancel()
	}()

	return solve(ctx, cfg, os.Stdout)
}

func solve(ctx context.Context, cfg config.Config, out io.Writer) int {
	var reporter *progress.Reporter
	if cfg.Progress || cfg.Events {
		var events io.Writer
		if cfg.Events {
			events = os.Stderr
		}
		reporter = progress.NewReporter(progress.Options{
			Events:        events,
			SourceURL:     cfg.BaseURL,
			MaxConcurrent: cfg.MaxConcurrent,
			Timeout:       cfg.Timeout,
		})
		reporter.Start()
		defer reporter.Stop()
	}

	s, err := solver.New(solver.Options{
		BaseURL:         cfg.BaseURL,
		MaxConcurrent:   cfg.MaxConcurrent,
		Timeout:         cfg.Timeout,
		SampleSize:      cfg.SampleSize,
		SampleRange:     cfg.SampleRange,
		GapRange:        cfg.GapRange,
		GiveUpThreshold: cfg.GiveUpThreshold,
		Progress:        reporter,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	message, ok, err := s.Solve(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	stats := s.Stats()
	if !ok {
		if reporter != nil {
			reporter.GaveUp()
		} else {
			fmt.Fprintln(os.Stderr, "[decoder] Could not complete the puzzle")
		}
		return ExitIncomplete
	}

	if reporter != nil {
		reporter.Solved(message, stats.Fragments)
	}
	fmt.Fprintln(out, message)

	if cfg.Bucket != "" {
		if err := archiveResult(ctx, cfg, message, stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error archiving result: %v\n", err)
			return ExitStorageError
		}
		fmt.Fprintf(os.Stderr, "[decoder] Archived to %s/%s\n", cfg.Bucket, cfg.Object)
	}

	return ExitSuccess
}

func archiveResult(ctx context.Context, cfg config.Config, message string, stats solver.Stats) error {
	bkt, err := blob.OpenBucket(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("open bucket: %w", err)
	}
	defer bkt.Close()

	return archive.Save(ctx, bkt, cfg.Object, archive.Result{
		Message:   message,
		SourceURL: cfg.BaseURL,
		Fragments: stats.Fragments,
		Probes:    stats.Probes,
		Duration:  stats.Duration,
		SolvedAt:  time.Now().UTC(),
	})
}
