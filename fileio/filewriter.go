package fileio

import "io"

type FileWriter interface {
	io.Writer
	New(filename string, bufferSize int, kind HashKind) error
	Name() string
	Written() int64
	Close() ([]byte, error)
	Abort() error
}
