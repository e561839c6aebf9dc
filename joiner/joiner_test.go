package joiner

import (
	"context"
	"go_fast_split/capacity"
	"go_fast_split/engine"
	"go_fast_split/fileio"
	"go_fast_split/progress"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

type fakeVolume struct{}

func (fakeVolume) Inspect(string) (capacity.Volume, error) {
	return capacity.Volume{Free: 1 << 50}, nil
}

func splitSource(c *qt.C, size int, kind fileio.HashKind) (string, *engine.Result, []byte) {
	dir := c.TB.TempDir()
	data := make([]byte, size)
	rand.New(rand.NewSource(42)).Read(data)
	src := filepath.Join(dir, "src.bin")
	c.Assert(os.WriteFile(src, data, 0o644), qt.IsNil)

	s := engine.New(nil)
	s.Guard = &capacity.Guard{Inspector: fakeVolume{}}
	res, err := s.Split(context.Background(), engine.Job{
		Source:   src,
		PartSize: 16 * 1024,
		DestDir:  filepath.Join(dir, "parts"),
		Checksum: kind,
		Manifest: kind != fileio.HashNone,
	})
	c.Assert(err, qt.IsNil)
	return dir, res, data
}

func partNames(res *engine.Result) []string {
	var names []string
	for _, p := range res.Parts {
		names = append(names, p.Name)
	}
	return names
}

func TestJoinRestoresSource(t *testing.T) {
	c := qt.New(t)
	dir, res, data := splitSource(c, 100_000, fileio.HashNone)
	out := filepath.Join(dir, "joined.bin")

	var events []progress.Event
	j := New(progress.Funcs{OnProgress: func(ev progress.Event) { events = append(events, ev) }})
	n, err := j.Join(context.Background(), partNames(res), out)
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, int64(len(data)))

	got, err := os.ReadFile(out)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, data)
	c.Assert(events, qt.HasLen, len(res.Parts))
	c.Assert(events[0].Total, qt.Equals, len(res.Parts))
}

func TestJoinManifestVerifiesParts(t *testing.T) {
	c := qt.New(t)
	for _, kind := range []fileio.HashKind{fileio.HashCRC32, fileio.HashSHA256} {
		dir, res, data := splitSource(c, 50_000, kind)
		out := filepath.Join(dir, "joined.bin")

		_, err := New(nil).JoinManifest(context.Background(), res.Manifest, out)
		c.Assert(err, qt.IsNil)
		got, err := os.ReadFile(out)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.DeepEquals, data)
	}
}

func TestJoinManifestRejectsCorruptPart(t *testing.T) {
	c := qt.New(t)
	dir, res, _ := splitSource(c, 50_000, fileio.HashSHA256)
	c.Assert(os.WriteFile(res.Parts[1].Name, []byte("tampered"), 0o644), qt.IsNil)
	out := filepath.Join(dir, "joined.bin")

	var msgs []progress.Message
	j := New(progress.Funcs{OnMessage: func(m progress.Message) { msgs = append(msgs, m) }})
	_, err := j.JoinManifest(context.Background(), res.Manifest, out)
	c.Assert(err, qt.ErrorIs, ErrChecksumMismatch)
	c.Assert(msgs, qt.HasLen, 1)
	c.Assert(msgs[0].Code, qt.Equals, progress.CodeChecksumMismatch)

	_, statErr := os.Stat(out)
	c.Assert(os.IsNotExist(statErr), qt.IsTrue)
}

func TestJoinRejectsBadInput(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	part := filepath.Join(dir, "p1")
	c.Assert(os.WriteFile(part, []byte("x"), 0o644), qt.IsNil)

	_, err := New(nil).Join(context.Background(), nil, filepath.Join(dir, "out"))
	c.Assert(err, qt.ErrorIs, ErrNoParts)

	_, err = New(nil).Join(context.Background(), []string{part}, part)
	c.Assert(err, qt.ErrorIs, ErrOutputIsPart)
}

func TestJoinMissingPartRemovesOutput(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	part := filepath.Join(dir, "p1")
	c.Assert(os.WriteFile(part, []byte("abc"), 0o644), qt.IsNil)
	out := filepath.Join(dir, "out")

	_, err := New(nil).Join(context.Background(), []string{part, filepath.Join(dir, "p2")}, out)
	c.Assert(err, qt.ErrorIs, os.ErrNotExist)
	_, statErr := os.Stat(out)
	c.Assert(os.IsNotExist(statErr), qt.IsTrue)
}

func TestJoinCanceled(t *testing.T) {
	c := qt.New(t)
	dir, res, _ := splitSource(c, 50_000, fileio.HashNone)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Join(ctx, partNames(res), filepath.Join(dir, "out"))
	c.Assert(err, qt.ErrorIs, context.Canceled)
}

func TestJoinManifestKeepsSingleByteOrderMark(t *testing.T) {
	c := qt.New(t)
	for name, source := range map[string][]byte{
		"utf-8":    []byte("\ufeffa\nb\nc\nd\n"),
		"utf-16le": {0xff, 0xfe, 'a', 0, '\n', 0, 'b', 0, '\n', 0, 'c', 0},
	} {
		dir := t.TempDir()
		src := filepath.Join(dir, "notes.txt")
		c.Assert(os.WriteFile(src, source, 0o644), qt.IsNil)

		s := engine.New(nil)
		s.Guard = &capacity.Guard{Inspector: fakeVolume{}}
		res, err := s.Split(context.Background(), engine.Job{
			Source:   src,
			PartSize: 2,
			Mode:     engine.ByLines,
			DestDir:  filepath.Join(dir, "parts"),
			Checksum: fileio.HashSHA256,
			Manifest: true,
		})
		c.Assert(err, qt.IsNil)
		c.Assert(res.Parts, qt.HasLen, 2, qt.Commentf("%s", name))

		out := filepath.Join(dir, "joined.txt")
		n, err := New(nil).JoinManifest(context.Background(), res.Manifest, out)
		c.Assert(err, qt.IsNil)
		c.Assert(n, qt.Equals, int64(len(source)))
		got, err := os.ReadFile(out)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.DeepEquals, source, qt.Commentf("%s", name))
	}
}

func TestJoinRejectsOutputNamingPartDifferently(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	part := filepath.Join(dir, "p1")
	c.Assert(os.WriteFile(part, []byte("hello"), 0o644), qt.IsNil)

	wd, err := os.Getwd()
	c.Assert(err, qt.IsNil)
	rel, err := filepath.Rel(wd, part)
	c.Assert(err, qt.IsNil)
	_, err = New(nil).Join(context.Background(), []string{part}, rel)
	c.Assert(err, qt.ErrorIs, ErrOutputIsPart)

	link := filepath.Join(dir, "link")
	c.Assert(os.Link(part, link), qt.IsNil)
	_, err = New(nil).Join(context.Background(), []string{part}, link)
	c.Assert(err, qt.ErrorIs, ErrOutputIsPart)

	got, err := os.ReadFile(part)
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, "hello")
}
