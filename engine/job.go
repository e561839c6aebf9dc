package engine

import (
	"context"
	"errors"
	"go_fast_split/capacity"
	"go_fast_split/constants"
	"go_fast_split/fileio"
	"go_fast_split/naming"
	"go_fast_split/progress"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// Mode selects how part size is measured
type Mode int

const (
	ByBytes Mode = iota
	ByLines
)

func (m Mode) String() string {
	if m == ByLines {
		return "lines"
	}
	return "bytes"
}

// Job configures one split. It is not modified once Split starts.
type Job struct {
	Source         string
	PartSize       int64 // Bytes or lines depending on Mode
	Mode           Mode
	DestDir        string // Defaults to the source's folder
	Pattern        string // Defaults to a pattern derived from the source name
	DeleteOriginal bool
	LogPath        string // Generation log, one part name per line
	BufferSize     int    // Read buffer in byte mode, 0 for default
	Checksum       fileio.HashKind
	Manifest       bool // Write checksums of all parts next to them
}

// Part describes one written part file
type Part struct {
	Name     string
	Seq      int
	Total    int   // 0 in line mode
	Written  int64 // Bytes or lines depending on mode
	Bytes    int64 // File size including any byte-order mark
	Checksum []byte
}

// State of a job
type State int

const (
	NotStarted State = iota
	Validating
	Splitting
	Finalizing
	Succeeded
	Failed
)

var stateNames = [...]string{"not started", "validating", "splitting", "finalizing", "succeeded", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "state " + strconv.Itoa(int(s))
}

// Result is returned from Split whether it succeeds or not
type Result struct {
	JobID         uuid.UUID
	State         State
	Parts         []Part
	Bytes         int64 // Source bytes copied into parts
	Lines         int64
	Manifest      string
	SourceDeleted bool
	Err           error
}

// Splitter runs split jobs
type Splitter struct {
	Guard       *capacity.Guard
	Factory     fileio.IOFactory
	Reporter    progress.Reporter
	WriteBuffer int
}

// New returns splitter using the OS volume inspector and buffered file I/O
func New(reporter progress.Reporter) *Splitter {
	return &Splitter{
		Guard:       capacity.NewGuard(),
		Factory:     new(fileio.BufferedFactory),
		Reporter:    reporter,
		WriteBuffer: constants.DEFAULT_WRITE_BUFFER,
	}
}

// run holds per-job state
type run struct {
	job      Job
	res      *Result
	rep      progress.Reporter
	factory  fileio.IOFactory
	writeBuf int
	namer    *naming.Namer
	size     int64
	total    int
	encoding string // Line mode source encoding
	bom      []byte // Repeated at the start of every part
}

// Split runs job to completion. Start and Finish are reported exactly once and
// every failure is returned as *Error.
func (s *Splitter) Split(ctx context.Context, job Job) (res *Result, err error) {
	r := &run{
		job:      job,
		res:      &Result{JobID: uuid.New()},
		rep:      s.Reporter,
		factory:  s.Factory,
		writeBuf: s.WriteBuffer,
	}
	if r.rep == nil {
		r.rep = progress.Nop
	}
	if r.factory == nil {
		r.factory = new(fileio.BufferedFactory)
	}
	if r.writeBuf <= 0 {
		r.writeBuf = constants.DEFAULT_WRITE_BUFFER
	}
	res = r.res

	r.rep.Start(res.JobID, job.Source)
	defer func() {
		if err != nil {
			res.State = Failed
			res.Err = err
		} else {
			res.State = Succeeded
		}
		r.rep.Finish(res.JobID, err)
	}()

	res.State = Validating
	guard := s.Guard
	if guard == nil {
		guard = capacity.NewGuard()
	}
	if err = r.validate(guard); err != nil {
		return res, err
	}

	log, lerr := naming.OpenLog(job.LogPath)
	if lerr != nil {
		return res, r.fail(KindDestinationCreateFailure, job.LogPath, lerr)
	}
	defer log.Close()
	r.namer.Log = log

	res.State = Splitting
	if job.Mode == ByLines {
		err = r.splitByLines(ctx)
	} else {
		err = r.splitBySize(ctx)
	}
	if err != nil {
		return res, err
	}

	res.State = Finalizing
	if job.Manifest && job.Checksum != fileio.HashNone {
		if err = r.writeManifest(); err != nil {
			return res, err
		}
	}
	if job.DeleteOriginal {
		r.deleteSource()
	}
	return res, nil
}

// validate runs all pre-flight checks. Nothing is written before it passes.
func (r *run) validate(guard *capacity.Guard) error {
	job := r.job
	switch job.Mode {
	case ByBytes:
		if job.PartSize < constants.MIN_PART_SIZE {
			return r.failWith(KindPartSizeTooSmall, job.Source, nil, map[string]string{
				"part_size": progress.FormatSize(job.PartSize),
				"min":       progress.FormatSize(constants.MIN_PART_SIZE),
			})
		}
	case ByLines:
		if job.PartSize < constants.MIN_PART_LINES {
			return r.failWith(KindPartSizeTooSmall, job.Source, nil, map[string]string{
				"part_size": strconv.FormatInt(job.PartSize, 10) + " lines",
				"min":       strconv.Itoa(constants.MIN_PART_LINES) + " line",
			})
		}
	default:
		return r.fail(KindUnknown, job.Source, errors.New("unknown operation mode "+strconv.Itoa(int(job.Mode))))
	}

	info, err := os.Stat(job.Source)
	if err != nil {
		return r.fail(KindSourceOpenFailure, job.Source, err)
	}
	if info.IsDir() {
		return r.fail(KindSourceOpenFailure, job.Source, errors.New("is a directory"))
	}
	r.size = info.Size()

	dest := job.DestDir
	if dest == "" {
		dest = filepath.Dir(job.Source)
	}
	limit := job.PartSize
	if job.Mode == ByLines {
		// Part size in lines says nothing about part size in bytes.
		limit = 0
	}
	if err := guard.Check(dest, r.size, limit); err != nil {
		return r.capacityFailure(dest, err)
	}

	if job.Mode == ByBytes {
		r.total = int((r.size + job.PartSize - 1) / job.PartSize)
		if r.total == 0 {
			// Empty source still yields one empty part.
			r.total = 1
		}
	}

	namer, err := naming.New(job.Source, job.Pattern, job.DestDir, r.total)
	if err != nil {
		return r.failWith(KindInvalidPattern, "", err, map[string]string{"pattern": job.Pattern})
	}
	if err := namer.Prepare(); err != nil {
		return r.fail(KindDestinationCreateFailure, namer.Dir, err)
	}
	r.namer = namer
	return nil
}

func (r *run) capacityFailure(dest string, err error) error {
	var space *capacity.SpaceError
	var part *capacity.PartSizeError
	switch {
	case errors.As(err, &space):
		return r.failWith(KindInsufficientSpace, dest, err, map[string]string{
			"dir":      space.Dir,
			"free":     progress.FormatSize(space.Free),
			"required": progress.FormatSize(space.Required),
		})
	case errors.As(err, &part):
		return r.failWith(KindUnsupportedPartSize, dest, err, map[string]string{
			"fs":        part.FileSystem,
			"limit":     part.Limit.Label,
			"part_size": progress.FormatSize(part.PartSize),
		})
	}
	return r.fail(KindDestinationCreateFailure, dest, err)
}

// deleteSource removes the source unless it is read-only
func (r *run) deleteSource() {
	params := map[string]string{"file": r.job.Source}
	info, err := os.Stat(r.job.Source)
	if err != nil {
		params["error"] = err.Error()
		r.message(progress.Warn, progress.CodeSourceOpen, params)
		return
	}
	if info.Mode().Perm()&0o200 == 0 {
		r.message(progress.Warn, progress.CodeSourceReadOnly, params)
		return
	}
	if err := os.Remove(r.job.Source); err != nil {
		params["error"] = err.Error()
		r.message(progress.Warn, progress.CodeSourceOpen, params)
		return
	}
	r.res.SourceDeleted = true
	r.message(progress.Info, progress.CodeSourceDeleted, params)
}

func (r *run) message(level progress.Level, code progress.Code, params map[string]string) {
	r.rep.Message(progress.Message{Level: level, Code: code, Params: params})
}

// fail reports an error message with file and error parameters and returns *Error
func (r *run) fail(kind Kind, path string, cause error) error {
	params := map[string]string{"file": path}
	if cause != nil {
		params["error"] = cause.Error()
	}
	return r.failWith(kind, path, cause, params)
}

func (r *run) failWith(kind Kind, path string, cause error, params map[string]string) error {
	code := kind.Code()
	if code == "" {
		code = progress.Code(kindNames[kind])
	}
	r.message(progress.Error, code, params)
	return &Error{Kind: kind, Path: path, Err: cause}
}

func (r *run) emit(name string, seq int, written int64) {
	r.rep.Progress(progress.Event{
		JobID:    r.res.JobID,
		File:     name,
		Part:     seq,
		Written:  written,
		Total:    r.total,
		PartSize: r.job.PartSize,
	})
}
