package progress

import "github.com/google/uuid"

// Event is emitted after each processed chunk or line
type Event struct {
	JobID    uuid.UUID
	File     string // Part file currently being written
	Part     int    // 1-based part number
	Written  int64  // Bytes or lines written to current part
	Total    int    // Total parts, 0 when unknown
	PartSize int64  // Configured part size
}

// Reporter receives job notifications. Start and Finish fire exactly once per job.
type Reporter interface {
	Start(jobID uuid.UUID, source string)
	Progress(ev Event)
	Message(msg Message)
	Finish(jobID uuid.UUID, err error)
}

// Funcs adapts plain callbacks to Reporter. Nil callbacks are skipped.
type Funcs struct {
	OnStart    func(jobID uuid.UUID, source string)
	OnProgress func(ev Event)
	OnMessage  func(msg Message)
	OnFinish   func(jobID uuid.UUID, err error)
}

func (f Funcs) Start(jobID uuid.UUID, source string) {
	if f.OnStart != nil {
		f.OnStart(jobID, source)
	}
}

func (f Funcs) Progress(ev Event) {
	if f.OnProgress != nil {
		f.OnProgress(ev)
	}
}

func (f Funcs) Message(msg Message) {
	if f.OnMessage != nil {
		f.OnMessage(msg)
	}
}

func (f Funcs) Finish(jobID uuid.UUID, err error) {
	if f.OnFinish != nil {
		f.OnFinish(jobID, err)
	}
}

// Nop discards all notifications
var Nop Reporter = Funcs{}
