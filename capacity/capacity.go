package capacity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInsufficientSpace   = errors.New("insufficient free space")
	ErrUnsupportedPartSize = errors.New("part size exceeds filesystem maximum file size")
)

// Volume describes the filesystem holding a directory
type Volume struct {
	FileSystem string // Format name such as FAT32, empty when unknown
	Free       int64  // Bytes available to the caller
}

// Inspector reads volume information for a directory
type Inspector interface {
	Inspect(dir string) (Volume, error)
}

// Limit is the maximum file size supported by a filesystem format
type Limit struct {
	MaxFileSize int64
	Label       string
}

// Limits lists filesystem formats with a known maximum file size.
// Formats missing from the table have no enforced limit.
var Limits = map[string]Limit{
	"FAT12": {MaxFileSize: 32 << 20, Label: "32 MB"},
	"FAT16": {MaxFileSize: 2 << 30, Label: "2 GB"},
	"FAT32": {MaxFileSize: 4 << 30, Label: "4 GB"},
}

// MaxFileSize looks up limit for given filesystem format
func MaxFileSize(fileSystem string) (Limit, bool) {
	l, ok := Limits[strings.ToUpper(fileSystem)]
	return l, ok
}

// SpaceError reports a volume without room for a full copy of the source
type SpaceError struct {
	Dir      string
	Free     int64
	Required int64
}

func (e *SpaceError) Error() string {
	return fmt.Sprintf("%s: %d bytes free, more than %d required", e.Dir, e.Free, e.Required)
}

func (e *SpaceError) Unwrap() error { return ErrInsufficientSpace }

// PartSizeError reports a part size above the filesystem limit
type PartSizeError struct {
	FileSystem string
	Limit      Limit
	PartSize   int64
}

func (e *PartSizeError) Error() string {
	return fmt.Sprintf("part size %d exceeds %s maximum of %s", e.PartSize, e.FileSystem, e.Limit.Label)
}

func (e *PartSizeError) Unwrap() error { return ErrUnsupportedPartSize }

// Guard runs pre-flight checks before any part is created
type Guard struct {
	Inspector Inspector
}

// NewGuard returns guard backed by the operating system
func NewGuard() *Guard {
	return &Guard{Inspector: SystemInspector{}}
}

// Check verifies dir has more free space than sourceSize and, when partSize > 0,
// that the filesystem accepts files of partSize bytes.
func (g *Guard) Check(dir string, sourceSize, partSize int64) error {
	target, err := existingAncestor(dir)
	if err != nil {
		return err
	}
	vol, err := g.Inspector.Inspect(target)
	if err != nil {
		return err
	}

	// A full duplicate of the source must fit.
	if vol.Free <= sourceSize {
		return &SpaceError{Dir: target, Free: vol.Free, Required: sourceSize}
	}

	if partSize > 0 {
		if limit, ok := MaxFileSize(vol.FileSystem); ok && partSize > limit.MaxFileSize {
			return &PartSizeError{FileSystem: strings.ToUpper(vol.FileSystem), Limit: limit, PartSize: partSize}
		}
	}
	return nil
}

// existingAncestor walks up from dir until an existing directory is found
func existingAncestor(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if info, err := os.Stat(abs); err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", abs)
			}
			return abs, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", os.ErrNotExist
		}
		abs = parent
	}
}

// fatType classifies a FAT volume by its cluster count
func fatType(clusters uint64) string {
	switch {
	case clusters < 4085:
		return "FAT12"
	case clusters < 65525:
		return "FAT16"
	default:
		return "FAT32"
	}
}
