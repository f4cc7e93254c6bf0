package dat

import "github.com/leaptools/dat/internal/datfmt"

// Entry represents a file in the archive index.
type Entry = datfmt.Entry

// File pairs an archive entry name with its decoded payload.
type File struct {
	// Name is the path within the archive, forward-slash separated,
	// at most 63 bytes when UTF-8 encoded ([Build] truncates longer ones).
	Name string

	// Data is the decoded payload.
	Data []byte
}

// Wire layout constants.
const (
	// EntrySlotSize is the fixed size of one index entry record.
	EntrySlotSize = datfmt.SlotSize

	// MaxNameLen is the longest entry name in encoded bytes.
	MaxNameLen = datfmt.NameSize - 1
)
