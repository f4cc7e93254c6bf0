// Command datool lists, extracts and packs TimeLeap .dat archives.
//
//	datool -action list -archive chip.dat
//	datool -action extract -archive chip.dat -out chip/
//	datool -action pack -dir chip/ -archive chip.dat
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/leaptools/dat"
)

type config struct {
	action  string
	archive string
	out     string
	dir     string
	workers int
	verbose bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.action, "action", "list", "action to perform: list, extract, pack")
	flag.StringVar(&cfg.archive, "archive", "", "path to the .dat archive (required)")
	flag.StringVar(&cfg.out, "out", ".", "output directory for extracted files")
	flag.StringVar(&cfg.dir, "dir", "", "input directory for pack")
	flag.IntVar(&cfg.workers, "workers", 0, "decode workers; 0 = automatic, negative = serial")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.Parse()

	if cfg.archive == "" {
		fmt.Fprintln(os.Stderr, "error: -archive is required")
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	opts := []dat.Option{
		dat.WithLogger(logger),
		dat.WithWorkers(cfg.workers),
	}

	switch cfg.action {
	case "list":
		a, err := openArchive(cfg.archive, opts)
		if err != nil {
			return err
		}
		for e := range a.Entries() {
			fmt.Printf("%10d  %10d  %s\n", e.Offset, e.PackedSize, e.Name)
		}
		return nil

	case "extract":
		a, err := openArchive(cfg.archive, opts)
		if err != nil {
			return err
		}
		stats, err := a.Extract(ctx, cfg.out)
		if err != nil {
			return err
		}
		fmt.Printf("extracted %d files (%d bytes) to %s\n", stats.FileCount, stats.TotalBytes, cfg.out)
		return nil

	case "pack":
		if cfg.dir == "" {
			return fmt.Errorf("-dir is required for pack")
		}
		f, err := os.Create(cfg.archive)
		if err != nil {
			return err
		}
		if err := dat.Create(ctx, cfg.dir, f, opts...); err != nil {
			f.Close()
			os.Remove(cfg.archive)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("packed %s into %s\n", cfg.dir, cfg.archive)
		return nil

	default:
		return fmt.Errorf("unknown action %q", cfg.action)
	}
}

func openArchive(path string, opts []dat.Option) (*dat.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dat.Parse(data, opts...)
}
