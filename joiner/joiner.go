package joiner

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"go_fast_split/constants"
	"go_fast_split/engine"
	"go_fast_split/fileio"
	"go_fast_split/progress"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrNoParts          = errors.New("no parts to join")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrOutputIsPart     = errors.New("output would overwrite a part")
)

// Joiner concatenates part files back into one file
type Joiner struct {
	Factory    fileio.IOFactory
	Reporter   progress.Reporter
	BufferSize int
}

// New returns joiner using buffered file I/O
func New(reporter progress.Reporter) *Joiner {
	if reporter == nil {
		reporter = progress.Nop
	}
	return &Joiner{
		Factory:    new(fileio.BufferedFactory),
		Reporter:   reporter,
		BufferSize: constants.DEFAULT_WRITE_BUFFER,
	}
}

// JoinManifest verifies every part listed in manifest and joins them in order.
// A byte-order mark recorded in the manifest is kept only from the first part.
func (j *Joiner) JoinManifest(ctx context.Context, manifest, output string) (int64, error) {
	m, err := engine.ReadManifest(manifest)
	if err != nil {
		return 0, err
	}
	parts := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		sum, err := fileio.GetFileChecksum(e.Path, m.Kind)
		if err != nil {
			return 0, err
		}
		if !bytes.Equal(sum, e.Sum) {
			j.Reporter.Message(progress.Message{
				Level:  progress.Error,
				Code:   progress.CodeChecksumMismatch,
				Params: map[string]string{"file": e.Path, "want": hex.EncodeToString(e.Sum), "got": hex.EncodeToString(sum)},
			})
			return 0, fmt.Errorf("%w: %s", ErrChecksumMismatch, e.Path)
		}
		parts = append(parts, e.Path)
	}
	return j.join(ctx, parts, output, m.BOM())
}

// Join writes parts in the given order to output. A partially written output
// is removed on failure.
func (j *Joiner) Join(ctx context.Context, parts []string, output string) (int64, error) {
	return j.join(ctx, parts, output, nil)
}

// join strips bom from the start of every part after the first
func (j *Joiner) join(ctx context.Context, parts []string, output string, bom []byte) (total int64, err error) {
	id := uuid.New()
	j.Reporter.Start(id, output)
	defer func() { j.Reporter.Finish(id, err) }()

	if len(parts) == 0 {
		return 0, ErrNoParts
	}
	if err := checkOutput(parts, output); err != nil {
		return 0, err
	}

	bufSize := j.BufferSize
	if bufSize <= 0 {
		bufSize = constants.DEFAULT_WRITE_BUFFER
	}
	out := j.Factory.NewWriter()
	if err := out.New(output, bufSize, fileio.HashNone); err != nil {
		return 0, err
	}
	buf := make([]byte, bufSize)

	for i, p := range parts {
		if err := ctx.Err(); err != nil {
			out.Abort()
			return total, err
		}
		var skip []byte
		if i > 0 {
			skip = bom
		}
		n, err := j.copyPart(out, p, buf, skip)
		total += n
		if err != nil {
			out.Abort()
			return total, err
		}
		j.Reporter.Progress(progress.Event{JobID: id, File: p, Part: i + 1, Written: n, Total: len(parts)})
	}

	if _, err := out.Close(); err != nil {
		out.Abort()
		return total, err
	}
	return total, nil
}

// checkOutput refuses an output naming the same file as any part
func checkOutput(parts []string, output string) error {
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	outInfo, statErr := os.Stat(output)
	for _, p := range parts {
		partAbs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		same := partAbs == outAbs
		if !same && statErr == nil {
			if info, err := os.Stat(p); err == nil {
				same = os.SameFile(info, outInfo)
			}
		}
		if same {
			return fmt.Errorf("%w: %s", ErrOutputIsPart, p)
		}
	}
	return nil
}

// copyPart appends part to out, dropping a leading skip prefix when present
func (j *Joiner) copyPart(out io.Writer, part string, buf, skip []byte) (int64, error) {
	in := j.Factory.NewReader()
	if err := in.New(part, len(buf)); err != nil {
		return 0, err
	}
	defer in.Close()

	var src io.Reader = in
	if len(skip) > 0 {
		head := make([]byte, len(skip))
		n, err := io.ReadFull(in, head)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return 0, err
		}
		if n < len(skip) || !bytes.Equal(head, skip) {
			src = io.MultiReader(bytes.NewReader(head[:n]), in)
		}
	}
	return io.CopyBuffer(out, src, buf)
}
