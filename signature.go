package dircmp

import (
	"bytes"
	"io"
	"log/slog"
)

// QuickEqual is the fast-path check run on every common file before any
// line-level work. Non-regular files never match. Equal signatures match
// without reading. Different sizes never match. Otherwise the content
// decides, either chunk by chunk or by digest when a content hash is set.
func (c *Comparator) QuickEqual(left, right string) (bool, error) {
	leftInfo, err := c.fs.Stat(left)
	if err != nil {
		return false, classifyPathError(left, err, newStatPathError)
	}

	rightInfo, err := c.fs.Stat(right)
	if err != nil {
		return false, classifyPathError(right, err, newStatPathError)
	}

	if !leftInfo.Mode().IsRegular() || !rightInfo.Mode().IsRegular() {
		return false, nil
	}

	leftSig, rightSig := signatureOf(leftInfo), signatureOf(rightInfo)
	if leftSig.Equal(rightSig) {
		c.logger.Debug("signatures match", slog.String("left", left), slog.String("right", right))
		return true, nil
	}

	if leftSig.Size != rightSig.Size {
		return false, nil
	}

	if c.hash != HashNone {
		return c.equalDigest(left, right)
	}

	return c.equalContent(left, right)
}

func (c *Comparator) equalContent(left, right string) (bool, error) {
	leftFile, err := c.fs.Open(left)
	if err != nil {
		return false, classifyPathError(left, err, newOpenFileError)
	}
	defer leftFile.Close()

	rightFile, err := c.fs.Open(right)
	if err != nil {
		return false, classifyPathError(right, err, newOpenFileError)
	}
	defer rightFile.Close()

	leftBuf := make([]byte, c.bufferSize)
	rightBuf := make([]byte, c.bufferSize)
	for {
		leftN, leftErr := io.ReadFull(leftFile, leftBuf)
		rightN, rightErr := io.ReadFull(rightFile, rightBuf)

		leftDone, err := chunkDone(left, leftErr)
		if err != nil {
			return false, err
		}

		rightDone, err := chunkDone(right, rightErr)
		if err != nil {
			return false, err
		}

		if !bytes.Equal(leftBuf[:leftN], rightBuf[:rightN]) {
			return false, nil
		}

		if leftDone || rightDone {
			return leftDone == rightDone, nil
		}
	}
}

// chunkDone interprets an io.ReadFull error: EOF variants end the stream,
// anything else is a read failure.
func chunkDone(path string, err error) (bool, error) {
	switch err {
	case nil:
		return false, nil
	case io.EOF, io.ErrUnexpectedEOF:
		return true, nil
	default:
		return false, newReadFileError(path, err)
	}
}

func (c *Comparator) equalDigest(left, right string) (bool, error) {
	leftSum, err := c.digest(left)
	if err != nil {
		return false, err
	}

	rightSum, err := c.digest(right)
	if err != nil {
		return false, err
	}

	return bytes.Equal(leftSum, rightSum), nil
}

func (c *Comparator) digest(path string) ([]byte, error) {
	file, err := c.fs.Open(path)
	if err != nil {
		return nil, classifyPathError(path, err, newOpenFileError)
	}
	defer file.Close()

	h := c.hash.new()
	if _, err := io.CopyBuffer(h, file, make([]byte, c.bufferSize)); err != nil {
		return nil, newReadFileError(path, err)
	}

	return h.Sum(nil), nil
}
