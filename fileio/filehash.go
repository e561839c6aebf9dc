package fileio

import (
	"errors"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/minio/sha256-simd"
)

// HashKind selects the checksum computed while writing parts
type HashKind uint8

const (
	HashNone HashKind = iota
	HashCRC32
	HashSHA256
)

var ErrUnknownHash = errors.New("unknown checksum method")

func (k HashKind) String() string {
	switch k {
	case HashCRC32:
		return "crc32"
	case HashSHA256:
		return "sha256"
	default:
		return "none"
	}
}

// ParseHashKind maps a method name to HashKind
func ParseHashKind(name string) (HashKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return HashNone, nil
	case "crc32":
		return HashCRC32, nil
	case "sha256":
		return HashSHA256, nil
	}
	return HashNone, ErrUnknownHash
}

// newHash returns a fresh hash for given kind or nil when hashing is disabled
func newHash(kind HashKind) hash.Hash {
	switch kind {
	case HashCRC32:
		return crc32.NewIEEE()
	case HashSHA256:
		return sha256.New()
	}
	return nil
}

// GetFileChecksum returns checksum of given file
func GetFileChecksum(file string, kind HashKind) ([]byte, error) {
	h := newHash(kind)
	if h == nil {
		return nil, ErrUnknownHash
	}

	handle, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	if _, err := io.CopyBuffer(h, handle, make([]byte, 64*1024)); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}
