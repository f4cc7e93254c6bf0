package dat

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/leaptools/dat/internal/cipher"
	"github.com/leaptools/dat/internal/datfmt"
)

// Build assembles an archive from files.
//
// Files are sorted by name (lexicographic byte order) for deterministic
// output, each payload is transformed with start offset 0, and the index is
// laid out in the same sort order with running-sum offsets. Names longer
// than MaxNameLen encoded bytes are silently truncated; validate beforehand
// if truncation is unacceptable. The input slice and payloads are not
// modified.
//
// Build fails only when the input exceeds what the format can address: more
// entries than the configured limit, or a data region past 4 GiB.
func Build(files []File, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	if limit := cfg.entryLimit(); len(files) > limit {
		return nil, fmt.Errorf("%w: %d files exceeds limit %d", ErrTooManyEntries, len(files), limit)
	}

	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b File) int {
		return strings.Compare(a.Name, b.Name)
	})

	var dataLen uint64
	for _, f := range sorted {
		dataLen += uint64(len(f.Data))
	}
	if dataLen > math.MaxUint32 {
		return nil, fmt.Errorf("%w: data region of %d bytes", ErrSizeOverflow, dataLen)
	}

	cfg.log().Info("building archive", "files", len(sorted), "data_size", dataLen)

	out := make([]byte, 0, dataLen+uint64(len(sorted)*datfmt.SlotSize)+datfmt.TrailerSize)
	index := make([]byte, len(sorted)*datfmt.SlotSize)
	var offset uint32
	for i, f := range sorted {
		enc := bytes.Clone(f.Data)
		cipher.Encode(enc, 0)
		out = append(out, enc...)

		// The transform preserves length, so packed and unpacked are the
		// same value in archives this module writes.
		size := uint32(len(enc))
		datfmt.PutEntry(index[i*datfmt.SlotSize:], Entry{
			Name:         f.Name,
			Offset:       offset,
			UnpackedSize: size,
			PackedSize:   size,
		})
		offset += size

		cfg.reportProgress(StageEncoding, f.Name, uint64(offset), i+1, len(sorted))
	}

	datfmt.SwapNibbles(index)
	out = append(out, index...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(sorted)))
	return out, nil
}
