package dircmp

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DecodeMode decides what happens to bytes the encoding cannot decode.
type DecodeMode int

const (
	// DecodeReplace substitutes U+FFFD for every undecodable sequence.
	DecodeReplace DecodeMode = iota
	// DecodeStrict fails the read with ErrDecodeFile.
	DecodeStrict
)

func (m DecodeMode) String() string {
	if m == DecodeStrict {
		return "strict"
	}
	return "replace"
}

type readOptions struct {
	encoding     encoding.Encoding
	encodingName string
	mode         DecodeMode
	trim         bool
	err          error
}

func defaultReadOptions() readOptions {
	return readOptions{
		encoding:     unicode.UTF8,
		encodingName: "utf-8",
		mode:         DecodeReplace,
		trim:         true,
	}
}

// WithEncoding sets the text encoding files are decoded from
func WithEncoding(enc encoding.Encoding) Option {
	return func(opts *options) {
		if enc == nil {
			return
		}
		opts.read.encoding = enc
		opts.read.encodingName = encodingName(enc)
	}
}

// WithEncodingName resolves a WHATWG encoding label such as "utf-8" or "latin1"
func WithEncodingName(name string) Option {
	return func(opts *options) {
		enc, err := htmlindex.Get(name)
		if err != nil {
			opts.read.err = newUnknownEncodingError(name, err)
			return
		}
		opts.read.encoding = enc
		opts.read.encodingName = encodingName(enc)
	}
}

// WithDecodeMode sets the policy for undecodable input
func WithDecodeMode(mode DecodeMode) Option {
	return func(opts *options) {
		opts.read.mode = mode
	}
}

// WithoutTrim keeps leading and trailing whitespace on every line
func WithoutTrim() Option {
	return func(opts *options) {
		opts.read.trim = false
	}
}

func encodingName(enc encoding.Encoding) string {
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "unknown"
	}
	return name
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8 || enc == unicode.UTF8BOM
}
