package dat

import (
	"log/slog"
	"runtime"
)

// DefaultMaxEntries caps the entry count accepted from a trailer or an input
// file set when no WithMaxEntries option is given. A hostile trailer can
// otherwise demand gigabytes of index.
const DefaultMaxEntries = 1 << 20

// Option configures Parse, Build, Create and Extract.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	workers    int
	progress   ProgressFunc
	maxEntries int
}

// WithLogger attaches a logger for operational messages. By default nothing
// is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithWorkers sets the number of goroutines used to decode independent
// entries. Values < 0 force serial processing, zero picks a count from
// GOMAXPROCS, values > 0 force a specific count. Entry order in results is
// unaffected.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithProgress registers a callback for progress events.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// WithMaxEntries bounds the entry count. Zero uses DefaultMaxEntries,
// negative means no limit.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		c.maxEntries = n
	}
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// log returns the configured logger, falling back to a discard logger.
func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// entryLimit resolves the WithMaxEntries setting.
func (c *config) entryLimit() int {
	switch {
	case c.maxEntries == 0:
		return DefaultMaxEntries
	case c.maxEntries < 0:
		return int(^uint(0) >> 1)
	default:
		return c.maxEntries
	}
}

// workerCount resolves the WithWorkers setting for n independent entries.
func (c *config) workerCount(n int) int {
	switch {
	case c.workers < 0 || n < 2:
		return 1
	case c.workers > 0:
		return min(c.workers, n)
	default:
		return min(runtime.GOMAXPROCS(0), n)
	}
}

// reportProgress sends a progress event if a callback is configured.
func (c *config) reportProgress(stage ProgressStage, name string, bytesDone uint64, filesDone, filesTotal int) {
	if c.progress == nil {
		return
	}
	c.progress(ProgressEvent{
		Stage:      stage,
		Name:       name,
		BytesDone:  bytesDone,
		FilesDone:  filesDone,
		FilesTotal: filesTotal,
	})
}
