package fat12

import (
	"io/fs"
	"strings"
)

// GoFs adapts Fs to the standard library's io/fs.FS, for callers that
// want to range over the filesystem with fs.WalkDir or fs.Glob instead
// of using the afero or native APIs.
type GoFs struct {
	fs *Fs
}

// NewGoFs wraps fs as an io/fs.FS.
func NewGoFs(fs *Fs) *GoFs { return &GoFs{fs: fs} }

var _ fs.FS = (*GoFs)(nil)
var _ fs.ReadDirFS = (*GoFs)(nil)
var _ fs.StatFS = (*GoFs)(nil)

// domainPath translates an io/fs-style name (forward-slash separated,
// "." denoting the filesystem root) into this driver's native
// backslash-separated convention, since the core only understands the
// separator spec.md §6 defines. io/fs requires its callers to hand
// fs.FS implementations slash-separated, ".."-free names (fs.ValidPath),
// so that check happens at this boundary rather than in the core.
func domainPath(name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", fs.ErrInvalid
	}
	if name == "." {
		return pathSeparator, nil
	}
	return pathSeparator + strings.ReplaceAll(name, "/", pathSeparator), nil
}

func (g *GoFs) Open(name string) (fs.File, error) {
	p, perr := domainPath(name)
	if perr != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: perr}
	}
	h, err := g.fs.Open(p)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &GoFile{h: h}, nil
}

func (g *GoFs) Stat(name string) (fs.FileInfo, error) {
	p, perr := domainPath(name)
	if perr != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: perr}
	}
	h, err := g.fs.Open(p)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return handleFileInfo{h: h}, nil
}

func (g *GoFs) ReadDir(name string) ([]fs.DirEntry, error) {
	p, perr := domainPath(name)
	if perr != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: perr}
	}
	h, err := g.fs.Open(p)
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	defer h.Close()

	var entries []fs.DirEntry
	err = g.fs.Iterate(h, func(entry DirEntry) IterControl {
		if entry.IsVolumeLabel() || entry.IsHidden() {
			return Continue
		}
		entries = append(entries, GoDirEntry{entry: entry})
		return Continue
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GoFile adapts Handle to fs.File.
type GoFile struct {
	h *Handle
}

func (f *GoFile) Stat() (fs.FileInfo, error) { return handleFileInfo{h: f.h}, nil }
func (f *GoFile) Read(p []byte) (int, error) { return f.h.Read(p) }
func (f *GoFile) Close() error                { return f.h.Close() }

var _ fs.File = (*GoFile)(nil)

// GoDirEntry adapts DirEntry to fs.DirEntry.
type GoDirEntry struct {
	entry DirEntry
}

func (e GoDirEntry) Name() string { return e.entry.Name() }
func (e GoDirEntry) IsDir() bool  { return e.entry.IsDirectory() }
func (e GoDirEntry) Type() fs.FileMode {
	if e.entry.IsDirectory() {
		return fs.ModeDir
	}
	return 0
}
func (e GoDirEntry) Info() (fs.FileInfo, error) { return Stat(e.entry), nil }

var _ fs.DirEntry = (GoDirEntry{})
