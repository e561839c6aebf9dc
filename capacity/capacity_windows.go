package capacity

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

// SystemInspector reads volume information through the Win32 volume APIs
type SystemInspector struct{}

func (SystemInspector) Inspect(dir string) (Volume, error) {
	path, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return Volume{}, err
	}
	var free, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(path, &free, &total, &totalFree); err != nil {
		return Volume{}, err
	}

	root, err := windows.UTF16PtrFromString(filepath.VolumeName(dir) + `\`)
	if err != nil {
		return Volume{}, err
	}
	name := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumeInformation(root, nil, 0, nil, nil, nil, &name[0], uint32(len(name))); err != nil {
		return Volume{}, err
	}

	vol := Volume{Free: int64(free), FileSystem: windows.UTF16ToString(name)}
	// Windows reports both FAT12 and FAT16 as "FAT".
	if strings.EqualFold(vol.FileSystem, "FAT") {
		if total <= 32<<20 {
			vol.FileSystem = "FAT12"
		} else {
			vol.FileSystem = "FAT16"
		}
	}
	return vol, nil
}
