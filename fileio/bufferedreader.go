package fileio

import (
	"bufio"
	"os"
)

// BufferedReader does buffered file reads
type BufferedReader struct {
	file   *os.File
	reader *bufio.Reader
	size   int64
}

// New opens file for reading or returns error upon failing to do so
func (b *BufferedReader) New(filename string, bufferSize int) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	b.file = file
	b.size = info.Size()
	b.reader = bufio.NewReaderSize(b.file, bufferSize)
	return nil
}

// Read reads from the underlying buffered reader
func (b *BufferedReader) Read(p []byte) (int, error) {
	if b.reader == nil {
		panic("cannot read without file handle")
	}
	return b.reader.Read(p)
}

// Size returns file size at the time it was opened
func (b *BufferedReader) Size() int64 {
	return b.size
}

// Close releases the file handle
func (b *BufferedReader) Close() error {
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	return err
}
