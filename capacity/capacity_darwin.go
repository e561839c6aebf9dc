package capacity

import "golang.org/x/sys/unix"

var typeNames = map[string]string{
	"exfat": "exFAT",
	"ntfs":  "NTFS",
	"apfs":  "APFS",
	"hfs":   "HFS+",
}

// SystemInspector reads volume information with statfs
type SystemInspector struct{}

func (SystemInspector) Inspect(dir string) (Volume, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return Volume{}, err
	}
	vol := Volume{Free: int64(st.Bavail) * int64(st.Bsize)}
	name := unix.ByteSliceToString(st.Fstypename[:])
	if name == "msdos" {
		vol.FileSystem = fatType(st.Blocks)
	} else {
		vol.FileSystem = typeNames[name]
	}
	return vol, nil
}
