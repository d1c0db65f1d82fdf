package dircmp

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// ReadFile reads entire file content as bytes
func ReadFile(fs Filesystem, path string) ([]byte, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, classifyPathError(path, err, newOpenFileError)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, classifyPathError(path, err, newReadFileError)
	}

	return data, nil
}

// ReadFileLines reads file content as a slice of decoded lines. Lines end at
// "\n", "\r\n" or a lone "\r"; by default each one is trimmed of surrounding
// whitespace.
func ReadFileLines(fs Filesystem, path string, options ...Option) ([]string, error) {
	opts := applyOptions(options)
	if opts.read.err != nil {
		return nil, opts.read.err
	}

	return readFileLines(fs, path, &opts.read, opts.logger)
}

func readFileLines(fs Filesystem, path string, ro *readOptions, logger *slog.Logger) ([]string, error) {
	raw, err := ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	text, err := ro.decode(path, raw)
	if err != nil {
		return nil, err
	}
	if n := bytes.Count(text, []byte(string(utf8.RuneError))); n > 0 {
		logger.Debug("replacement characters in decoded text",
			slog.String("path", path),
			slog.String("encoding", ro.encodingName),
			slog.Int("count", n))
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 4096), max(len(text)+1, bufio.MaxScanTokenSize))
	scanner.Split(scanTextLines)
	for scanner.Scan() {
		line := scanner.Text()
		if ro.trim {
			line = strings.TrimSpace(line)
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, newReadFileError(path, err)
	}

	return lines, nil
}

// decode runs raw through the configured decoder. In strict mode the first
// undecodable sequence is an error; otherwise it becomes U+FFFD.
func (ro *readOptions) decode(path string, raw []byte) ([]byte, error) {
	text, err := ro.encoding.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, newDecodeFileError(path, ro.encodingName, 0)
	}

	if ro.mode != DecodeStrict {
		return text, nil
	}

	// A UTF-8 source may legitimately contain U+FFFD, so check the raw bytes.
	if isUTF8(ro.encoding) {
		if at := firstInvalidUTF8(raw); at >= 0 {
			return nil, newDecodeFileError(path, ro.encodingName, lineAt(raw, at))
		}
		return text, nil
	}

	if at := bytes.IndexRune(text, utf8.RuneError); at >= 0 {
		return nil, newDecodeFileError(path, ro.encodingName, lineAt(text, at))
	}

	return text, nil
}

func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// lineAt returns the 1-based line holding offset.
func lineAt(b []byte, offset int) int {
	return bytes.Count(b[:offset], []byte{'\n'}) + 1
}

// scanTextLines is a bufio.SplitFunc that accepts all three newline styles.
func scanTextLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need one more byte to tell "\r" from "\r\n"
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

// CompareFiles compares two text files, printing the first difference.
func CompareFiles(left, right string, options ...Option) (bool, error) {
	c, err := New(options...)
	if err != nil {
		return false, err
	}

	return c.CompareFiles(left, right)
}

// CompareFiles compares two text files line by line and rune by rune. It
// prints at most one difference location and returns whether they match.
func (c *Comparator) CompareFiles(left, right string) (bool, error) {
	diff, err := c.FirstDifference(left, right)
	if err != nil {
		return false, err
	}

	if diff == nil {
		return true, nil
	}

	c.report.fileDifference(diff)
	return false, nil
}

// FirstDifference returns the first mismatch between two text files, or nil
// when they compare identical. Nothing is printed.
func (c *Comparator) FirstDifference(left, right string) (*FileDifference, error) {
	leftLines, err := readFileLines(c.fs, left, &c.read, c.logger)
	if err != nil {
		return nil, err
	}

	rightLines, err := readFileLines(c.fs, right, &c.read, c.logger)
	if err != nil {
		return nil, err
	}

	diff := firstDifference(left, leftLines, rightLines)
	if diff != nil {
		c.logger.Debug("files differ",
			slog.String("left", left),
			slog.String("right", right),
			slog.Bool("line_count_mismatch", diff.LineCountMismatch),
			slog.Int("line", diff.Line),
			slog.Int("char", diff.Char))
	}

	return diff, nil
}
