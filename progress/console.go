package progress

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// Console prints notifications for a terminal or a plain log
type Console struct {
	out   io.Writer
	tty   bool
	lines bool
	part  int
	dirty bool
}

// NewConsole returns console reporter. Progress is redrawn in place when f is a terminal.
func NewConsole(f *os.File, lineMode bool) *Console {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return &Console{out: f, tty: tty, lines: lineMode}
}

func (c *Console) Start(jobID uuid.UUID, source string) {
	fmt.Fprintln(c.out, "Splitting", source)
}

func (c *Console) Progress(ev Event) {
	total := "?"
	if ev.Total > 0 {
		total = strconv.Itoa(ev.Total)
	}
	if !c.tty {
		// One line per part when not attached to a terminal.
		if ev.Part != c.part {
			c.part = ev.Part
			fmt.Fprintln(c.out, "Writing part", ev.Part, "of", total+":", ev.File)
		}
		return
	}
	amount := FormatSize(ev.Written) + " / " + FormatSize(ev.PartSize)
	if c.lines {
		amount = strconv.FormatInt(ev.Written, 10) + " / " + strconv.FormatInt(ev.PartSize, 10) + " lines"
	}
	fmt.Fprintf(c.out, "\rpart %d/%s  %s\x1b[K", ev.Part, total, amount)
	c.dirty = true
}

func (c *Console) Message(msg Message) {
	c.clear()
	fmt.Fprintln(c.out, msg.Level.String()+":", msg.Text())
}

func (c *Console) Finish(jobID uuid.UUID, err error) {
	c.clear()
	if err != nil {
		fmt.Fprintln(c.out, "Split failed:", err.Error())
		return
	}
	fmt.Fprintln(c.out, "Split completed")
}

func (c *Console) clear() {
	if c.dirty {
		fmt.Fprintln(c.out)
		c.dirty = false
	}
}
