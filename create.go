package dat

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Create builds an archive from the contents of dir and writes it to w.
//
// The directory is walked recursively; regular files are archived under
// their slash-separated relative paths, empty directories are not preserved
// and symlinks and other irregular entries are skipped. Build's sorting
// makes the output independent of walk order. The whole archive is
// assembled in memory, as are the payloads; this format is used for asset
// bundles that fit comfortably in RAM.
//
// The context can be used to cancel a walk over a large tree.
func Create(ctx context.Context, dir string, w io.Writer, opts ...Option) error {
	cfg := newConfig(opts)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return err
	}
	defer root.Close()

	cfg.log().Info("creating archive", "dir", dir)
	limit := cfg.entryLimit()

	var files []File
	err = fs.WalkDir(root.FS(), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			cfg.log().Debug("skipping irregular file", "path", path, "type", d.Type().String())
			return nil
		}
		if len(files) >= limit {
			return fmt.Errorf("%w: limit %d", ErrTooManyEntries, limit)
		}

		data, err := fs.ReadFile(root.FS(), path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, File{Name: path, Data: data})
		cfg.reportProgress(StageEnumerating, path, 0, len(files), 0)
		return nil
	})
	if err != nil {
		return err
	}

	archive, err := Build(files, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(archive); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}
