// Package datfmt defines the wire layout of .dat archives: the 80-byte index
// entry slot, the whole-buffer nibble-swap obfuscation applied to the index
// region, and the 4-byte trailing entry count.
//
// All multi-byte fields are little-endian.
package datfmt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/leaptools/dat/internal/nameenc"
)

const (
	// SlotSize is the fixed size of one index entry.
	SlotSize = 80

	// NameSize is the NUL-terminated name field at the start of a slot.
	NameSize = 64

	// TrailerSize is the entry count at the very end of the archive.
	TrailerSize = 4
)

// Slot field offsets past the name.
const (
	offOffset   = 64
	offUnpacked = 68
	offPacked   = 72
	// [76:80) reserved: zeroed on write, ignored on read.
)

// ErrFormat is the root of all structural archive errors. Use errors.Is to
// match it, or errors.As with *FormatError for the failing entry and reason.
var ErrFormat = errors.New("dat: malformed archive")

// FormatError describes a structural violation in an archive. Entry is the
// index of the offending entry, or -1 when the violation is not tied to one.
type FormatError struct {
	Entry  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Entry >= 0 {
		return fmt.Sprintf("dat: entry %d: %s", e.Entry, e.Reason)
	}
	return "dat: " + e.Reason
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// Entry is one archived file's metadata record within the index.
type Entry struct {
	// Name is the file's path within the archive, forward-slash separated.
	// Stored NUL-terminated in a 64-byte field; at most 63 bytes survive a
	// write.
	Name string

	// Offset is the byte offset into the archive's data region (not the
	// whole file) where the payload begins.
	Offset uint32

	// UnpackedSize and PackedSize both equal the transformed byte length in
	// archives written by this module (the cipher preserves length). They
	// are read independently because third-party archives may differ;
	// PackedSize is the number of bytes occupied in the data region.
	UnpackedSize uint32
	PackedSize   uint32
}

// PutEntry marshals e into slot, which must be at least SlotSize bytes.
// Oversized names are silently truncated; the reserved tail is zeroed.
func PutEntry(slot []byte, e Entry) {
	slot = slot[:SlotSize]
	clear(slot)
	copy(slot[:NameSize-1], nameenc.Encode(e.Name))
	binary.LittleEndian.PutUint32(slot[offOffset:], e.Offset)
	binary.LittleEndian.PutUint32(slot[offUnpacked:], e.UnpackedSize)
	binary.LittleEndian.PutUint32(slot[offPacked:], e.PackedSize)
}

// ParseEntry unmarshals a slot. The name stops at the first NUL (or the
// field end) and is decoded best-effort; parsing never fails.
func ParseEntry(slot []byte) Entry {
	slot = slot[:SlotSize]
	raw := slot[:NameSize]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return Entry{
		Name:         nameenc.Decode(raw),
		Offset:       binary.LittleEndian.Uint32(slot[offOffset:]),
		UnpackedSize: binary.LittleEndian.Uint32(slot[offUnpacked:]),
		PackedSize:   binary.LittleEndian.Uint32(slot[offPacked:]),
	}
}

// SwapNibbles exchanges the low and high nibble of every byte in place. The
// index region is stored swapped as a single pass; the operation is its own
// inverse, so reading and writing use this same function on their own
// copies.
func SwapNibbles(buf []byte) {
	for i, b := range buf {
		buf[i] = b<<4 | b>>4
	}
}

// IndexStart returns the offset of the index region for an archive of
// archiveLen bytes holding count entries, which is also the length of the
// data region. A count whose index cannot fit in front of the trailer means
// the archive is truncated or the trailer is corrupt.
func IndexStart(archiveLen int, count uint32) (int, error) {
	indexLen := int64(count) * SlotSize
	start := int64(archiveLen) - TrailerSize - indexLen
	if start < 0 {
		return 0, &FormatError{
			Entry:  -1,
			Reason: fmt.Sprintf("trailer count %d needs %d index bytes, archive has %d", count, indexLen, archiveLen-TrailerSize),
		}
	}
	return int(start), nil
}
