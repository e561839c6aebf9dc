package capacity

import "golang.org/x/sys/unix"

// Filesystem magic numbers from statfs(2).
const (
	msdosMagic = 0x4d44
	exfatMagic = 0x2011bab0
	ntfsMagic  = 0x5346544e
	ntfs3Magic = 0x7366746e
	ext4Magic  = 0xef53
	xfsMagic   = 0x58465342
	btrfsMagic = 0x9123683e
	tmpfsMagic = 0x01021994
)

var magicNames = map[int64]string{
	exfatMagic: "exFAT",
	ntfsMagic:  "NTFS",
	ntfs3Magic: "NTFS",
	ext4Magic:  "ext4",
	xfsMagic:   "XFS",
	btrfsMagic: "Btrfs",
	tmpfsMagic: "tmpfs",
}

// SystemInspector reads volume information with statfs
type SystemInspector struct{}

func (SystemInspector) Inspect(dir string) (Volume, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return Volume{}, err
	}
	vol := Volume{Free: int64(st.Bavail) * int64(st.Bsize)}
	magic := int64(st.Type) & 0xffffffff
	if magic == msdosMagic {
		// vfat reports cluster size as block size.
		vol.FileSystem = fatType(st.Blocks)
	} else {
		vol.FileSystem = magicNames[magic]
	}
	return vol, nil
}
