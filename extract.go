package dat

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ExtractStats contains statistics about an extraction.
type ExtractStats struct {
	// FileCount is the number of entries written.
	FileCount int

	// TotalBytes is the sum of decoded payload sizes written.
	TotalBytes uint64
}

// Extract decodes every entry and writes it under destDir, creating parent
// directories as needed. Files are written atomically (temp file + rename)
// and existing files are overwritten.
//
// Entry names must be valid slash-separated relative paths; a name that
// would escape destDir is rejected with an *fs.PathError wrapping
// fs.ErrInvalid. Independent entries are written in parallel per the
// configured worker count. On error, entries already written remain on disk.
func (a *Archive) Extract(ctx context.Context, destDir string) (ExtractStats, error) {
	cfg := &a.cfg
	cfg.log().Info("extracting archive", "dest", destDir, "entries", len(a.entries))

	var filesDone atomic.Int64
	var bytesDone atomic.Uint64

	writeEntry := func(ctx context.Context, e Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fs.ValidPath(e.Name) || e.Name == "." {
			return &fs.PathError{Op: "extract", Path: e.Name, Err: fs.ErrInvalid}
		}
		payload := a.payload(e)

		target := filepath.Join(destDir, filepath.FromSlash(e.Name))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
		if err := writeFileAtomic(target, payload); err != nil {
			return fmt.Errorf("write %s: %w", e.Name, err)
		}

		done := bytesDone.Add(uint64(len(payload)))
		n := filesDone.Add(1)
		cfg.reportProgress(StageExtracting, e.Name, done, int(n), len(a.entries))
		cfg.log().Debug("extracted entry", "name", e.Name, "size", len(payload))
		return nil
	}

	var err error
	if workers := cfg.workerCount(len(a.entries)); workers <= 1 {
		for _, e := range a.entries {
			if err = writeEntry(ctx, e); err != nil {
				break
			}
		}
	} else {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for _, e := range a.entries {
			eg.Go(func() error { return writeEntry(gctx, e) })
		}
		err = eg.Wait()
	}

	stats := ExtractStats{
		FileCount:  int(filesDone.Load()),
		TotalBytes: bytesDone.Load(),
	}
	if err != nil {
		return stats, err
	}
	return stats, nil
}
