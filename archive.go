package dat

import (
	"context"
	"encoding/binary"
	"fmt"
	"io/fs"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/leaptools/dat/internal/cipher"
	"github.com/leaptools/dat/internal/datfmt"
)

// Archive is a parsed .dat archive.
//
// Archive retains the byte slice given to Parse; callers must not modify it
// while the Archive is in use. Payload accessors return fresh copies, so an
// Archive is safe for concurrent reads.
type Archive struct {
	data    []byte // full archive; entries reference the data region prefix
	entries []Entry
	cfg     config
}

// Parse reads the trailer and index of an archive held in memory and
// validates every entry against the data region. Structural violations are
// reported as a *FormatError wrapping ErrFormat; a zero-entry archive is
// valid. Entry order is the stored index order, which is the archive's
// canonical ordering.
func Parse(data []byte, opts ...Option) (*Archive, error) {
	cfg := newConfig(opts)

	if len(data) < datfmt.TrailerSize {
		return nil, &FormatError{Entry: -1, Reason: fmt.Sprintf("archive of %d bytes has no trailer", len(data))}
	}
	count := binary.LittleEndian.Uint32(data[len(data)-datfmt.TrailerSize:])
	if limit := cfg.entryLimit(); uint64(count) > uint64(limit) {
		return nil, fmt.Errorf("%w: trailer count %d exceeds limit %d", ErrTooManyEntries, count, limit)
	}

	indexStart, err := datfmt.IndexStart(len(data), count)
	if err != nil {
		return nil, err
	}

	index := make([]byte, int(count)*datfmt.SlotSize)
	copy(index, data[indexStart:len(data)-datfmt.TrailerSize])
	datfmt.SwapNibbles(index)

	entries := make([]Entry, count)
	for i := range entries {
		e := datfmt.ParseEntry(index[i*datfmt.SlotSize:])
		if uint64(e.Offset)+uint64(e.PackedSize) > uint64(indexStart) {
			return nil, &FormatError{
				Entry:  i,
				Reason: fmt.Sprintf("offset %d + size %d exceeds data region (%d bytes)", e.Offset, e.PackedSize, indexStart),
			}
		}
		entries[i] = e
	}

	cfg.log().Debug("parsed archive index", "entries", len(entries), "data_size", indexStart)
	return &Archive{
		data:    data,
		entries: entries,
		cfg:     cfg,
	}, nil
}

// Len returns the number of entries in the archive.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Entries returns an iterator over the index in stored order.
func (a *Archive) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range a.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// payload copies the entry's region out of the archive and decodes it.
func (a *Archive) payload(e Entry) []byte {
	buf := make([]byte, e.PackedSize)
	copy(buf, a.data[e.Offset:int(e.Offset)+int(e.PackedSize)])
	cipher.Decode(buf, 0)
	return buf
}

// ReadFile returns the decoded payload of the named entry. When an archive
// holds duplicate names the first entry in index order wins. A missing name
// is reported as an *fs.PathError wrapping fs.ErrNotExist.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	for _, e := range a.entries {
		if e.Name == name {
			return a.payload(e), nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Files decodes every payload and returns them in index order.
//
// Entries are independent, so with a worker count above one they are decoded
// in parallel; the result slice order is always the index order.
func (a *Archive) Files(ctx context.Context) ([]File, error) {
	files := make([]File, len(a.entries))

	workers := a.cfg.workerCount(len(a.entries))
	if workers <= 1 {
		for i, e := range a.entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			files[i] = File{Name: e.Name, Data: a.payload(e)}
		}
		return files, nil
	}

	a.cfg.log().Debug("decoding entries", "entries", len(a.entries), "workers", workers)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, e := range a.entries {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = File{Name: e.Name, Data: a.payload(e)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
