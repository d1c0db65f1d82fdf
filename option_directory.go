package dircmp

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
)

// Option configures a Comparator and the text read path
type Option func(*options)

type options struct {
	fs         Filesystem
	out        io.Writer
	color      bool
	logger     *slog.Logger
	bufferSize int
	hash       HashType
	read       readOptions
}

// defaultOptions returns defaults for comparisons
func defaultOptions() *options {
	return &options{
		fs:         osfs.Default,
		out:        os.Stdout,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		bufferSize: 8 * 1024, // 8KB
		read:       defaultReadOptions(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFilesystem makes every read go through fs instead of the host filesystem
func WithFilesystem(fs Filesystem) Option {
	return func(opts *options) {
		if fs != nil {
			opts.fs = fs
		}
	}
}

// WithOutput sets where the report is written
func WithOutput(w io.Writer) Option {
	return func(opts *options) {
		if w != nil {
			opts.out = w
		}
	}
}

// WithColor enables ANSI colours in the report
func WithColor(enabled bool) Option {
	return func(opts *options) {
		opts.color = enabled
	}
}

// WithLogger sets the structured logger used for debug tracing
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithBufferSize sets the chunk size of the fast-path content check
func WithBufferSize(size int) Option {
	return func(opts *options) {
		if size > 0 {
			opts.bufferSize = size
		}
	}
}

// WithContentHash makes the fast path compare digests instead of raw bytes
func WithContentHash(hash HashType) Option {
	return func(opts *options) {
		opts.hash = hash
	}
}
