package dircmp

import (
	"log/slog"
)

// Comparator compares directory trees and text files. It holds only
// configuration, so one value can be reused for any number of sequential
// comparisons.
type Comparator struct {
	fs         Filesystem
	hash       HashType
	bufferSize int
	read       readOptions
	report     *reporter
	logger     *slog.Logger
}

// New builds a Comparator from options. It fails when an option names an
// unknown encoding or hash type.
func New(options ...Option) (*Comparator, error) {
	opts := applyOptions(options)
	if opts.read.err != nil {
		return nil, opts.read.err
	}

	if !opts.hash.valid() {
		return nil, newUnknownHashError(opts.hash)
	}

	return &Comparator{
		fs:         opts.fs,
		hash:       opts.hash,
		bufferSize: opts.bufferSize,
		read:       opts.read,
		report: &reporter{
			w:     opts.out,
			color: opts.color,
		},
		logger: opts.logger,
	}, nil
}

// PrintVerdict writes the closing line of a comparison report
func (c *Comparator) PrintVerdict(identical bool) {
	c.report.verdict(identical)
}
