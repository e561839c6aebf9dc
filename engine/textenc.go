package engine

import (
	"bufio"
	"bytes"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// encoding describes how lines are terminated in a text source
type encoding struct {
	name      string
	bom       []byte
	width     int // Code unit size in bytes
	bigEndian bool
}

var utf8Plain = encoding{name: "utf-8", width: 1}

// Longer BOMs first: the UTF-32LE BOM starts with the UTF-16LE one.
var boms = []encoding{
	{name: "utf-32le", bom: []byte{0xff, 0xfe, 0x00, 0x00}, width: 4},
	{name: "utf-32be", bom: []byte{0x00, 0x00, 0xfe, 0xff}, width: 4, bigEndian: true},
	{name: "utf-8", bom: []byte{0xef, 0xbb, 0xbf}, width: 1},
	{name: "utf-16le", bom: []byte{0xff, 0xfe}, width: 2},
	{name: "utf-16be", bom: []byte{0xfe, 0xff}, width: 2, bigEndian: true},
}

// encodingByName finds a byte-order mark encoding by name
func encodingByName(name string) (encoding, bool) {
	for _, e := range boms {
		if e.name == name {
			return e, true
		}
	}
	return encoding{}, false
}

// detectEncoding picks encoding from the byte-order mark, defaulting to UTF-8
func detectEncoding(head []byte) encoding {
	for _, e := range boms {
		if bytes.HasPrefix(head, e.bom) {
			return e
		}
	}
	return utf8Plain
}

// isNewline reports whether code unit is LF
func (e encoding) isNewline(unit []byte) bool {
	nl := 0
	if e.bigEndian {
		nl = e.width - 1
	}
	for i, b := range unit {
		if i == nl {
			if b != '\n' {
				return false
			}
		} else if b != 0 {
			return false
		}
	}
	return true
}

// sniffText returns detected MIME type and whether it is a kind of text
func sniffText(head []byte) (string, bool) {
	mt := mimetype.Detect(head)
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return mt.String(), true
		}
	}
	return mt.String(), false
}

// lineReader returns lines including their terminator
type lineReader struct {
	br   *bufio.Reader
	enc  encoding
	unit []byte
}

func newLineReader(br *bufio.Reader, enc encoding) *lineReader {
	return &lineReader{br: br, enc: enc, unit: make([]byte, enc.width)}
}

// ReadLine returns next line. The last line may lack a terminator and is
// returned together with io.EOF.
func (l *lineReader) ReadLine() ([]byte, error) {
	if l.enc.width == 1 {
		return l.br.ReadBytes('\n')
	}
	var line []byte
	for {
		n, err := io.ReadFull(l.br, l.unit)
		line = append(line, l.unit[:n]...)
		if err == io.ErrUnexpectedEOF {
			// Trailing partial code unit is kept as is.
			err = io.EOF
		}
		if err != nil {
			return line, err
		}
		if l.enc.isNewline(l.unit) {
			return line, nil
		}
	}
}
