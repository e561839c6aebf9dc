package engine

import (
	"go_fast_split/fileio"
	"go_fast_split/progress"
)

// sink owns the part file currently being written
type sink struct {
	r      *run
	out    fileio.FileWriter
	header []byte // Written at the start of every part
	seq    int
	name   string
}

func (s *sink) open() bool { return s.out != nil }

// next opens the following part
func (s *sink) next() error {
	s.seq++
	name, err := s.r.namer.Name(s.seq, s.r.total)
	if err != nil {
		return s.r.fail(KindDestinationCreateFailure, s.r.job.LogPath, err)
	}
	w := s.r.factory.NewWriter()
	if err := w.New(name, s.r.writeBuf, s.r.job.Checksum); err != nil {
		return s.r.fail(KindDestinationCreateFailure, name, err)
	}
	s.out = w
	s.name = name
	if len(s.header) > 0 {
		if _, err := w.Write(s.header); err != nil {
			return s.r.fail(KindDestinationCreateFailure, name, err)
		}
	}
	return nil
}

func (s *sink) write(p []byte) error {
	if _, err := s.out.Write(p); err != nil {
		return s.r.fail(KindDestinationCreateFailure, s.name, err)
	}
	return nil
}

// close flushes current part and records it as written
func (s *sink) close(written int64) error {
	size := s.out.Written()
	sum, err := s.out.Close()
	s.out = nil
	if err != nil {
		return s.r.fail(KindDestinationCreateFailure, s.name, err)
	}
	s.r.res.Parts = append(s.r.res.Parts, Part{
		Name:     s.name,
		Seq:      s.seq,
		Total:    s.r.total,
		Written:  written,
		Bytes:    size,
		Checksum: sum,
	})
	return nil
}

// release closes a part left open on a failure path, keeping what was written
func (s *sink) release() {
	if s.out != nil {
		s.out.Close()
		s.out = nil
	}
}

// discard removes the in-progress part after cancellation
func (s *sink) discard(cause error) error {
	params := map[string]string{"file": s.r.job.Source, "part": "nothing"}
	if s.out != nil {
		params["part"] = s.out.Name()
		s.out.Abort()
		s.out = nil
	}
	s.r.message(progress.Warn, progress.CodeCanceled, params)
	return &Error{Kind: KindCanceled, Path: s.r.job.Source, Err: cause}
}
