package naming

import (
	"fmt"
	"os"
)

// Log is an append-only list of generated part names, one per line
type Log struct {
	file *os.File
}

// OpenLog opens path for appending. Empty path returns nil log which discards names.
func OpenLog(path string) (*Log, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Log{file: f}, nil
}

func (l *Log) Append(name string) error {
	if l == nil {
		return nil
	}
	_, err := fmt.Fprintln(l.file, name)
	return err
}

func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}
