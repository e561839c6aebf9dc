package engine

import (
	"bufio"
	"context"
	"errors"
	"go_fast_split/constants"
	"go_fast_split/progress"
	"io"
	"strconv"
)

// splitByLines copies the source into parts of PartSize lines. Every part
// starts with the source's byte-order mark, if it has one.
func (r *run) splitByLines(ctx context.Context) error {
	in := r.factory.NewReader()
	if err := in.New(r.job.Source, constants.BUFFER_UNIT); err != nil {
		return r.fail(KindSourceOpenFailure, r.job.Source, err)
	}
	defer in.Close()
	// Parts must add up to the size seen when the source was opened.
	r.size = in.Size()

	br := bufio.NewReaderSize(in, constants.LINE_READ_BUFFER)
	// Short sources return fewer bytes along with an error; read errors surface below.
	head, _ := br.Peek(constants.SNIFF_LEN)
	enc := detectEncoding(head)
	if len(head) > 0 {
		if mime, ok := sniffText(head); !ok {
			r.message(progress.Warn, progress.CodeSourceNotText, map[string]string{"file": r.job.Source, "mime": mime})
		}
	}
	if _, err := br.Discard(len(enc.bom)); err != nil {
		return r.fail(KindSourceOpenFailure, r.job.Source, err)
	}
	copied := int64(len(enc.bom))
	r.encoding, r.bom = enc.name, enc.bom

	s := &sink{r: r, header: enc.bom}
	defer s.release()

	lines := newLineReader(br, enc)
	var inPart int64

	for {
		if err := ctx.Err(); err != nil {
			return s.discard(err)
		}

		line, rerr := lines.ReadLine()
		if len(line) > 0 {
			// Parts are opened lazily so input ending on a boundary leaves no empty part.
			if !s.open() {
				if err := s.next(); err != nil {
					return err
				}
				inPart = 0
			}
			if err := s.write(line); err != nil {
				return err
			}
			inPart++
			r.res.Lines++
			copied += int64(len(line))
			r.emit(s.name, s.seq, inPart)

			if inPart == r.job.PartSize {
				if err := s.close(inPart); err != nil {
					return err
				}
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return r.fail(KindSourceOpenFailure, r.job.Source, rerr)
		}
	}

	if s.open() {
		if err := s.close(inPart); err != nil {
			return err
		}
	}
	if s.seq == 0 {
		// Empty source still produces one part.
		if err := s.next(); err != nil {
			return err
		}
		if err := s.close(0); err != nil {
			return err
		}
	}

	r.res.Bytes = copied
	if copied != r.size {
		return r.failWith(KindSizeMismatch, r.job.Source,
			errors.New("copied "+strconv.FormatInt(copied, 10)+" of "+strconv.FormatInt(r.size, 10)+" bytes"),
			map[string]string{
				"file":     r.job.Source,
				"written":  strconv.FormatInt(copied, 10),
				"expected": strconv.FormatInt(r.size, 10),
			})
	}
	return nil
}
