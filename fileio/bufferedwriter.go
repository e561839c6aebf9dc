package fileio

import (
	"bufio"
	"errors"
	"hash"
	"os"
)

// BufferedWriter does buffered writes to a single file
type BufferedWriter struct {
	name    string
	file    *os.File
	writer  *bufio.Writer
	hash    hash.Hash
	written int64
}

// New creates new file for writing or returns error upon failing to do so
func (b *BufferedWriter) New(filename string, bufferSize int, kind HashKind) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	b.name = filename
	b.file = file
	b.hash = newHash(kind)
	// New buffered writer.
	b.writer = bufio.NewWriterSize(b.file, bufferSize)
	return nil
}

// Write writes data and updates running checksum
func (b *BufferedWriter) Write(p []byte) (int, error) {
	if b.file == nil {
		panic("cannot write without file handle")
	}
	n, err := b.writer.Write(p)
	if b.hash != nil {
		b.hash.Write(p[:n])
	}
	b.written += int64(n)
	return n, err
}

// Written returns number of bytes accepted so far
func (b *BufferedWriter) Written() int64 {
	return b.written
}

// Name returns the path of the file being written
func (b *BufferedWriter) Name() string {
	return b.name
}

// Close flushes remaining bytes, closes file and returns checksum if any
func (b *BufferedWriter) Close() ([]byte, error) {
	if b.file == nil {
		return nil, nil
	}
	// Write any remaining bytes.
	err := b.writer.Flush()
	err = errors.Join(err, b.file.Close())
	b.file = nil

	if b.hash == nil {
		return nil, err
	}
	return b.hash.Sum(nil), err
}

// Abort closes and removes a partially written file
func (b *BufferedWriter) Abort() error {
	if b.file != nil {
		b.file.Close()
		b.file = nil
	}
	if err := os.Remove(b.name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
