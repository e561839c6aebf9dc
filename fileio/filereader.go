package fileio

import "io"

type FileReader interface {
	io.ReadCloser
	New(filename string, bufferSize int) error
	Size() int64
}
