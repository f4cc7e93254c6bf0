package dat

import (
	"errors"

	"github.com/leaptools/dat/internal/datfmt"
)

// Structural errors re-exported from internal/datfmt.
var (
	// ErrFormat is the root of all structural archive errors: truncated
	// trailer, impossible entry count, entry regions outside the data
	// region. Match with errors.Is.
	ErrFormat = datfmt.ErrFormat
)

// FormatError carries the failing entry index and reason for a structural
// violation. It unwraps to ErrFormat.
type FormatError = datfmt.FormatError

// Sentinel errors specific to the dat package.
var (
	// ErrTooManyEntries is returned when a trailer count or input file set
	// exceeds the configured entry limit.
	ErrTooManyEntries = errors.New("dat: too many entries")

	// ErrSizeOverflow is returned when a data region would exceed what the
	// index's 32-bit offset and size fields can address.
	ErrSizeOverflow = errors.New("dat: size overflow")
)
