package fat12

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// AferoFs adapts Fs to afero.Fs, so this driver can be mounted
// anywhere an afero-based tool expects a filesystem. Every mutating
// method returns ErrNotSupported instead of panicking - this is a
// read-only driver by design (spec.md's Non-goals), and a caller
// using it through afero deserves a normal error return rather than a
// crash.
type AferoFs struct {
	fs *Fs
}

// NewAferoFs wraps fs as an afero.Fs.
func NewAferoFs(fs *Fs) *AferoFs { return &AferoFs{fs: fs} }

var _ afero.Fs = (*AferoFs)(nil)

// aferoDomainPath translates an afero-style "/"-separated path ("" or
// "/" meaning root) into this driver's native backslash convention, the
// same boundary translation GoFs does for io/fs (go-fs.go's
// domainPath) - afero callers expect to address this filesystem with
// their own slash paths, not spec.md §6's.
func aferoDomainPath(name string) string {
	if name == "" || name == "/" || name == "." {
		return pathSeparator
	}
	return pathSeparator + strings.ReplaceAll(strings.Trim(name, "/"), "/", pathSeparator)
}

func (a *AferoFs) Open(name string) (afero.File, error) {
	h, err := a.fs.Open(aferoDomainPath(name))
	if err != nil {
		return nil, err
	}
	return &aferoFile{h: h}, nil
}

func (a *AferoFs) Name() string { return "fat12" }

func (a *AferoFs) Stat(name string) (os.FileInfo, error) {
	h, err := a.fs.Open(aferoDomainPath(name))
	if err != nil {
		return nil, err
	}
	return handleFileInfo{h: h}, nil
}

func (a *AferoFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag != os.O_RDONLY {
		return nil, ErrNotSupported
	}
	return a.Open(name)
}

func (a *AferoFs) Create(string) (afero.File, error)      { return nil, ErrNotSupported }
func (a *AferoFs) Mkdir(string, os.FileMode) error        { return ErrNotSupported }
func (a *AferoFs) MkdirAll(string, os.FileMode) error      { return ErrNotSupported }
func (a *AferoFs) Remove(string) error                     { return ErrNotSupported }
func (a *AferoFs) RemoveAll(string) error                  { return ErrNotSupported }
func (a *AferoFs) Rename(string, string) error             { return ErrNotSupported }
func (a *AferoFs) Chmod(string, os.FileMode) error         { return ErrNotSupported }
func (a *AferoFs) Chown(string, int, int) error            { return ErrNotSupported }
func (a *AferoFs) Chtimes(string, time.Time, time.Time) error { return ErrNotSupported }

// aferoFile adapts Handle to afero.File.
type aferoFile struct {
	h *Handle
}

func (f *aferoFile) Read(p []byte) (int, error)            { return f.h.Read(p) }
func (f *aferoFile) ReadAt(p []byte, off int64) (int, error) { return f.h.ReadAt(p, off) }
func (f *aferoFile) Seek(offset int64, whence int) (int64, error) {
	return f.h.Seek(offset, whence)
}
func (f *aferoFile) Close() error { return f.h.Close() }
func (f *aferoFile) Name() string { return f.h.Name() }

func (f *aferoFile) Stat() (os.FileInfo, error) {
	return handleFileInfo{h: f.h}, nil
}

func (f *aferoFile) Readdir(count int) ([]os.FileInfo, error) {
	if !f.h.IsDir() {
		return nil, ErrNotADirectory
	}
	var infos []os.FileInfo
	err := f.h.fs.Iterate(f.h, func(entry DirEntry) IterControl {
		if entry.IsVolumeLabel() || entry.IsHidden() {
			return Continue
		}
		infos = append(infos, Stat(entry))
		if count > 0 && len(infos) >= count {
			return Stop
		}
		return Continue
	})
	return infos, err
}

func (f *aferoFile) Readdirnames(count int) ([]string, error) {
	infos, err := f.Readdir(count)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}

func (f *aferoFile) Write([]byte) (int, error)            { return 0, ErrNotSupported }
func (f *aferoFile) WriteAt([]byte, int64) (int, error)    { return 0, ErrNotSupported }
func (f *aferoFile) WriteString(string) (int, error)       { return 0, ErrNotSupported }
func (f *aferoFile) Truncate(int64) error                  { return ErrNotSupported }
func (f *aferoFile) Sync() error                           { return nil }

var _ afero.File = (*aferoFile)(nil)

// handleFileInfo adapts an open Handle to os.FileInfo, used where only
// the handle (not the originating DirEntry) is in scope - the root
// directory, for instance, has no backing DirEntry of its own.
type handleFileInfo struct {
	h *Handle
}

func (i handleFileInfo) Name() string { return i.h.Name() }
func (i handleFileInfo) Size() int64  { return int64(i.h.Size()) }
func (i handleFileInfo) IsDir() bool  { return i.h.IsDir() }
func (i handleFileInfo) ModTime() time.Time { return time.Time{} }
func (i handleFileInfo) Sys() interface{}   { return i.h }

func (i handleFileInfo) Mode() os.FileMode {
	if i.h.IsDir() {
		return os.ModeDir | 0555
	}
	return 0444
}
