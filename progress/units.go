package progress

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidSize = errors.New("invalid size")

var units = []struct {
	label string
	size  int64
}{
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
}

// FormatSize renders byte count using binary units, e.g. 1536 => "1.5 KB"
func FormatSize(n int64) string {
	for _, u := range units {
		if n >= u.size {
			v := decimal.NewFromInt(n).Div(decimal.NewFromInt(u.size)).Round(1)
			return v.String() + " " + u.label
		}
	}
	return decimal.NewFromInt(n).String() + " B"
}

// ParseSize parses sizes like "16384", "16K", "3M", "1.5G" or "2GB"
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "B")
	mul := int64(1)
	for _, u := range units {
		if strings.HasSuffix(s, u.label[:1]) {
			mul = u.size
			s = strings.TrimSuffix(s, u.label[:1])
			break
		}
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || v.IsNegative() {
		return 0, ErrInvalidSize
	}
	// Fractions of a byte are dropped.
	return v.Mul(decimal.NewFromInt(mul)).IntPart(), nil
}
