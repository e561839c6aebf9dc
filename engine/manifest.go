package engine

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"go_fast_split/constants"
	"go_fast_split/fileio"
	"os"
	"path/filepath"
	"strings"
)

var ErrMalformedManifest = errors.New("malformed manifest")

// ManifestEntry is one part listed in a manifest
type ManifestEntry struct {
	Name string // As written in the manifest, relative to it
	Path string // Resolved against the manifest's folder
	Sum  []byte
}

// Manifest lists part checksums in the order parts must be joined.
// The text form is a "# <method> [<encoding>]" header followed by
// sha256sum-style lines. Encoding is only set when every part starts with
// the source's byte-order mark.
type Manifest struct {
	Kind     fileio.HashKind
	Encoding string
	Entries  []ManifestEntry
}

// BOM returns the byte-order mark repeated at the start of every part
func (m *Manifest) BOM() []byte {
	if e, ok := encodingByName(m.Encoding); ok {
		return e.bom
	}
	return nil
}

// ManifestPath returns where the manifest for source is written inside dir
func ManifestPath(source, dir string) string {
	return filepath.Join(dir, filepath.Base(source)+constants.MANIFEST_SUFFIX)
}

// WriteManifest writes m to path, replacing any previous file
func WriteManifest(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if m.Encoding != "" {
		fmt.Fprintf(w, "# %s %s\n", m.Kind, m.Encoding)
	} else {
		fmt.Fprintf(w, "# %s\n", m.Kind)
	}
	for _, e := range m.Entries {
		fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(e.Sum), e.Name)
	}
	return errors.Join(w.Flush(), f.Close())
}

// ReadManifest parses manifest at path
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := new(Manifest)
	dir := filepath.Dir(path)
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		if line == 1 && strings.HasPrefix(text, "#") {
			fields := strings.Fields(strings.TrimPrefix(text, "#"))
			if len(fields) == 0 || len(fields) > 2 {
				return nil, fmt.Errorf("%w: %s line %d: bad header", ErrMalformedManifest, path, line)
			}
			kind, err := fileio.ParseHashKind(fields[0])
			if err != nil || kind == fileio.HashNone {
				return nil, fmt.Errorf("%w: %s line %d: unknown method", ErrMalformedManifest, path, line)
			}
			m.Kind = kind
			if len(fields) == 2 {
				if _, ok := encodingByName(fields[1]); !ok {
					return nil, fmt.Errorf("%w: %s line %d: unknown encoding %q", ErrMalformedManifest, path, line, fields[1])
				}
				m.Encoding = fields[1]
			}
			continue
		}
		sumHex, name, ok := strings.Cut(text, "  ")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %s line %d", ErrMalformedManifest, path, line)
		}
		sum, err := hex.DecodeString(sumHex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformedManifest, path, line, err)
		}
		m.Entries = append(m.Entries, ManifestEntry{Name: name, Path: filepath.Join(dir, name), Sum: sum})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if m.Kind == fileio.HashNone {
		return nil, fmt.Errorf("%w: %s: missing method header", ErrMalformedManifest, path)
	}
	return m, nil
}

// writeManifest records checksums of all written parts
func (r *run) writeManifest() error {
	m := &Manifest{Kind: r.job.Checksum}
	if len(r.bom) > 0 {
		m.Encoding = r.encoding
	}
	for _, p := range r.res.Parts {
		m.Entries = append(m.Entries, ManifestEntry{Name: filepath.Base(p.Name), Path: p.Name, Sum: p.Checksum})
	}
	path := ManifestPath(r.job.Source, r.namer.Dir)
	if err := WriteManifest(path, m); err != nil {
		return r.fail(KindDestinationCreateFailure, path, err)
	}
	r.res.Manifest = path
	return nil
}
