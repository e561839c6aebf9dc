package engine

import (
	"context"
	"errors"
	"go_fast_split/constants"
	"io"
	"strconv"
)

// bufferSize returns read buffer size, never larger than a part
func (r *run) bufferSize() int {
	size := int64(r.job.BufferSize)
	if size <= 0 {
		size = constants.DEFAULT_BUFFER_SIZE
	}
	if size > r.job.PartSize {
		size = r.job.PartSize
	}
	return int(size)
}

// splitBySize copies the source into parts of exactly PartSize bytes, the last
// part holding the remainder.
func (r *run) splitBySize(ctx context.Context) error {
	partSize := r.job.PartSize
	bufSize := r.bufferSize()

	in := r.factory.NewReader()
	if err := in.New(r.job.Source, bufSize); err != nil {
		return r.fail(KindSourceOpenFailure, r.job.Source, err)
	}
	defer in.Close()
	// Parts must add up to the size seen when the source was opened.
	r.size = in.Size()

	s := &sink{r: r}
	defer s.release()

	buf := make([]byte, bufSize)
	var inPart int64

	for {
		if err := ctx.Err(); err != nil {
			return s.discard(err)
		}

		n, rerr := io.ReadFull(in, buf)
		data := buf[:n]
		for len(data) > 0 {
			if !s.open() {
				if err := s.next(); err != nil {
					return err
				}
				inPart = 0
			}
			room := partSize - inPart
			k := int64(len(data))
			if k > room {
				k = room
			}
			if err := s.write(data[:k]); err != nil {
				return err
			}
			inPart += k
			r.res.Bytes += k
			data = data[k:]

			// Next part is only opened once more data arrives.
			if inPart == partSize {
				if err := s.close(inPart); err != nil {
					return err
				}
			}
		}
		if n > 0 {
			r.emit(s.name, s.seq, inPart)
		}

		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
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
		// Empty source.
		if err := s.next(); err != nil {
			return err
		}
		if err := s.close(0); err != nil {
			return err
		}
	}

	if r.res.Bytes != r.size {
		return r.failWith(KindSizeMismatch, r.job.Source,
			errors.New("wrote "+strconv.FormatInt(r.res.Bytes, 10)+" of "+strconv.FormatInt(r.size, 10)+" bytes"),
			map[string]string{
				"file":     r.job.Source,
				"written":  strconv.FormatInt(r.res.Bytes, 10),
				"expected": strconv.FormatInt(r.size, 10),
			})
	}
	return nil
}
