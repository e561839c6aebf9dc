package naming

import (
	"errors"
	"fmt"
	"go_fast_split/constants"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidPattern is returned for patterns that cannot name distinct parts.
// A pattern is a fmt format where %[1]d is the part number and %[2]d the total.
// Flags and width go before the index, as in %03[1]d.
var ErrInvalidPattern = errors.New("invalid name pattern")

// Width returns decimal digit count of total
func Width(total int) int {
	if total <= 0 {
		return constants.DEFAULT_NAME_WIDTH
	}
	return len(strconv.Itoa(total))
}

// AutoPattern derives pattern from source base name, e.g. "name_%03[1]d(%03[2]d).ext".
// When total is unknown (0) the total slot is left out.
func AutoPattern(source string, total int) string {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	base = escape(strings.TrimSuffix(base, ext))
	ext = escape(ext)

	w := Width(total)
	if total <= 0 {
		return fmt.Sprintf("%s_%%0%d[1]d%s", base, w, ext)
	}
	return fmt.Sprintf("%s_%%0%d[1]d(%%0%d[2]d)%s", base, w, w, ext)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// Verify checks pattern yields distinct plain file names
func Verify(pattern string) error {
	first := fmt.Sprintf(pattern, 1, 2)
	second := fmt.Sprintf(pattern, 2, 2)
	switch {
	case strings.Contains(first, "%!"):
		return fmt.Errorf("%w %q: bad verb or argument", ErrInvalidPattern, pattern)
	case first == second:
		return fmt.Errorf("%w %q: part number missing", ErrInvalidPattern, pattern)
	case first == "" || strings.ContainsAny(first, `/\`):
		return fmt.Errorf("%w %q: not a file name", ErrInvalidPattern, pattern)
	}
	return nil
}

// Namer produces part file paths
type Namer struct {
	Pattern string
	Dir     string
	Log     *Log
}

// New returns namer for source. Empty pattern is generated from the source name,
// empty dir defaults to the source's folder.
func New(source, pattern, dir string, total int) (*Namer, error) {
	if pattern == "" {
		pattern = AutoPattern(source, total)
	}
	if err := Verify(pattern); err != nil {
		return nil, err
	}
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return &Namer{Pattern: pattern, Dir: dir}, nil
}

// Prepare creates destination folder including parents
func (n *Namer) Prepare() error {
	return os.MkdirAll(n.Dir, 0o755)
}

// Name returns path of part seq out of total and records it in the generation log
func (n *Namer) Name(seq, total int) (string, error) {
	name := filepath.Join(n.Dir, fmt.Sprintf(n.Pattern, seq, total))
	if err := n.Log.Append(name); err != nil {
		return "", err
	}
	return name, nil
}
