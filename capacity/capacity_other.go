//go:build !linux && !darwin && !windows

package capacity

import "math"

// SystemInspector reports unlimited space where volume inspection is unavailable
type SystemInspector struct{}

func (SystemInspector) Inspect(dir string) (Volume, error) {
	return Volume{Free: math.MaxInt64}, nil
}
