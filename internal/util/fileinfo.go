package util

import (
	"golang.org/x/sys/unix"
)

// FileInfo identifies one version of a file on disk
type FileInfo struct {
	ModTime int64  // Last modification time, nanoseconds
	Size    int64  // File size in bytes
	Inode   uint64 // Inode number, changes when the file is replaced
}

// GetFileInfo stats path
func GetFileInfo(path string) (*FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, err
	}

	return &FileInfo{
		ModTime: st.Mtim.Nano(),
		Size:    st.Size,
		Inode:   uint64(st.Ino),
	}, nil
}
