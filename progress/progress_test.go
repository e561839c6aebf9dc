package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
)

func TestFormatSize(t *testing.T) {
	c := qt.New(t)
	c.Assert(FormatSize(512), qt.Equals, "512 B")
	c.Assert(FormatSize(1536), qt.Equals, "1.5 KB")
	c.Assert(FormatSize(3<<20), qt.Equals, "3 MB")
	c.Assert(FormatSize(4<<30), qt.Equals, "4 GB")
}

func TestParseSize(t *testing.T) {
	c := qt.New(t)
	for in, want := range map[string]int64{
		"16384": 16384,
		"16K":   16 << 10,
		"3m":    3 << 20,
		"3MB":   3 << 20,
		"1.5G":  3 << 29,
		"2 GB":  2 << 30,
	} {
		got, err := ParseSize(in)
		c.Assert(err, qt.IsNil, qt.Commentf("%s", in))
		c.Assert(got, qt.Equals, want, qt.Commentf("%s", in))
	}
	for _, in := range []string{"", "abc", "-3M", "1.5X"} {
		_, err := ParseSize(in)
		c.Assert(err, qt.ErrorIs, ErrInvalidSize, qt.Commentf("%s", in))
	}
}

func TestMessageText(t *testing.T) {
	c := qt.New(t)
	msg := Message{
		Level: Error,
		Code:  CodeUnsupportedPartSize,
		Params: map[string]string{
			"part_size": "5 GB",
			"fs":        "FAT32",
			"limit":     "4 GB",
		},
	}
	c.Assert(msg.Text(), qt.Equals, "part size 5 GB exceeds the FAT32 maximum file size of 4 GB")

	unknown := Message{Code: "custom", Params: map[string]string{"b": "2", "a": "1"}}
	c.Assert(unknown.Text(), qt.Equals, "custom a=1 b=2")
}

func TestFuncsSkipsNilCallbacks(t *testing.T) {
	c := qt.New(t)
	var started, finished int
	r := Funcs{
		OnStart:  func(uuid.UUID, string) { started++ },
		OnFinish: func(uuid.UUID, error) { finished++ },
	}
	id := uuid.New()
	r.Start(id, "src")
	r.Progress(Event{})
	r.Message(Message{})
	r.Finish(id, nil)
	c.Assert(started, qt.Equals, 1)
	c.Assert(finished, qt.Equals, 1)
}

func TestConsoleWithoutTerminal(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer
	con := &Console{out: &buf}
	id := uuid.New()

	con.Start(id, "big.bin")
	con.Progress(Event{File: "big_1(2).bin", Part: 1, Written: 10, Total: 2})
	con.Progress(Event{File: "big_1(2).bin", Part: 1, Written: 20, Total: 2})
	con.Progress(Event{File: "big_2(2).bin", Part: 2, Written: 5, Total: 2})
	con.Message(Message{Level: Warn, Code: CodeSourceReadOnly, Params: map[string]string{"file": "big.bin"}})
	con.Finish(id, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	c.Assert(lines, qt.DeepEquals, []string{
		"Splitting big.bin",
		"Writing part 1 of 2: big_1(2).bin",
		"Writing part 2 of 2: big_2(2).bin",
		"warning: big.bin is read-only and was kept",
		"Split failed: boom",
	})
}
