package dat

// ProgressEvent represents a progress update during archive operations.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Name is the entry currently being processed, if applicable.
	Name string

	// BytesDone is the number of payload bytes completed so far.
	BytesDone uint64

	// FilesDone is the number of entries completed.
	FilesDone int

	// FilesTotal is the total number of entries.
	// Zero indicates the total is not yet known (e.g. while enumerating).
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

const (
	// StageEnumerating indicates a directory tree is being walked.
	StageEnumerating ProgressStage = iota

	// StageEncoding indicates payloads are being transformed and laid out.
	StageEncoding

	// StageExtracting indicates entries are being decoded and written out.
	StageExtracting
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageEnumerating:
		return "enumerating"
	case StageEncoding:
		return "encoding"
	case StageExtracting:
		return "extracting"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates. Calls may come from multiple
// goroutines when extraction runs in parallel; implementations must be safe
// for concurrent use.
type ProgressFunc func(ProgressEvent)
