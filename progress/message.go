package progress

import (
	"sort"
	"strings"
)

type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Code identifies a message so front-ends can render it without inspecting errors
type Code string

const (
	CodeInsufficientSpace   Code = "insufficient_space"
	CodeUnsupportedPartSize Code = "unsupported_part_size"
	CodePartSizeTooSmall    Code = "part_size_too_small"
	CodeSourceOpen          Code = "source_open_failure"
	CodeDestinationCreate   Code = "destination_create_failure"
	CodeSizeMismatch        Code = "size_mismatch"
	CodeInvalidPattern      Code = "invalid_pattern"
	CodeCanceled            Code = "canceled"
	CodeSourceNotText       Code = "source_not_text"
	CodeSourceReadOnly      Code = "source_read_only"
	CodeSourceDeleted       Code = "source_deleted"
	CodeChecksumMismatch    Code = "checksum_mismatch"
)

var templates = map[Code]string{
	CodeInsufficientSpace:   "not enough free space in {dir}: {free} available, more than {required} required",
	CodeUnsupportedPartSize: "part size {part_size} exceeds the {fs} maximum file size of {limit}",
	CodePartSizeTooSmall:    "part size {part_size} is below the minimum of {min}",
	CodeSourceOpen:          "cannot open {file}: {error}",
	CodeDestinationCreate:   "cannot create {file}: {error}",
	CodeSizeMismatch:        "wrote {written} bytes but {file} holds {expected}",
	CodeInvalidPattern:      "invalid name pattern {pattern}",
	CodeCanceled:            "split of {file} canceled, discarded {part}",
	CodeSourceNotText:       "{file} looks like {mime}, splitting by lines anyway",
	CodeSourceReadOnly:      "{file} is read-only and was kept",
	CodeSourceDeleted:       "deleted {file}",
	CodeChecksumMismatch:    "checksum mismatch for {file}",
}

// Message is an informational or error notification with parameters
type Message struct {
	Level  Level
	Code   Code
	Params map[string]string
}

// Text renders message for humans
func (m Message) Text() string {
	tmpl, ok := templates[m.Code]
	if !ok {
		keys := make([]string, 0, len(m.Params))
		for k := range m.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString(string(m.Code))
		for _, k := range keys {
			b.WriteString(" " + k + "=" + m.Params[k])
		}
		return b.String()
	}
	pairs := make([]string, 0, len(m.Params)*2)
	for k, v := range m.Params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
