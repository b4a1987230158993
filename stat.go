package fat12

import (
	"io/fs"
	"time"
)

// FileInfo adapts a DirEntry (or a Handle) to os.FileInfo, for callers
// that want the standard library's view of a directory entry instead
// of the FAT-specific DirEntry/Handle types.
type FileInfo struct {
	entry DirEntry
}

// Stat returns entry's metadata as an os.FileInfo.
func Stat(entry DirEntry) FileInfo { return FileInfo{entry: entry} }

func (i FileInfo) Name() string { return i.entry.Name() }
func (i FileInfo) Size() int64  { return int64(i.entry.Size()) }
func (i FileInfo) IsDir() bool  { return i.entry.IsDirectory() }
func (i FileInfo) ModTime() time.Time { return i.entry.ModifiedAt() }
func (i FileInfo) Sys() interface{}   { return i.entry }

func (i FileInfo) Mode() fs.FileMode {
	var mode fs.FileMode
	if i.entry.IsDirectory() {
		mode |= fs.ModeDir | 0555
	} else {
		mode |= 0444
	}
	if i.entry.IsReadOnly() {
		mode &^= 0222
	}
	return mode
}
