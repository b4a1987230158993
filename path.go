package fat12

import (
	"strings"

	"github.com/tomos-os/fat12/internal/nameutil"
)

// pathSeparator is the only path component separator FAT12 paths use
// (spec.md §6) - not "/", which io/fs mandates and which the io/fs
// adapter in go-fs.go translates at its boundary instead.
const pathSeparator = `\`

// splitPath breaks path into its components and reports whether path
// was rooted (began with pathSeparator), matching the original
// source's `dir[0] != '\\'` check for "start from root instead of the
// current directory" (original_source/kernel/disk_command.c's
// GetFileFromPath). path "" is invalid (spec.md §8: "Opening \"\"
// returns INVALID"); a bare separator is the only way to denote the
// root on its own and resolves to zero components. Any other empty
// component - produced by a doubled separator or a trailing one - is
// also invalid (spec.md §4.5).
func splitPath(path string) (parts []string, rooted bool, err error) {
	if path == "" {
		return nil, false, ErrInvalidPath
	}

	rooted = strings.HasPrefix(path, pathSeparator)
	rest := strings.TrimPrefix(path, pathSeparator)
	if rest == "" {
		return nil, rooted, nil
	}

	parts = strings.Split(rest, pathSeparator)
	for _, p := range parts {
		if p == "" {
			return nil, false, ErrInvalidPath
		}
	}
	return parts, rooted, nil
}

// findEntry scans dir for the first live entry whose name matches
// target under case-insensitive comparison (spec.md §4.4).
func (fs *Fs) findEntry(dir *Handle, target string) (DirEntry, bool, error) {
	var found DirEntry
	var ok bool
	err := fs.iterate(dir, func(entry DirEntry) IterControl {
		if nameutil.EqualFold(entry.Name(), target) {
			found = entry
			ok = true
			return Stop
		}
		return Continue
	})
	if err != nil {
		return DirEntry{}, false, err
	}
	return found, ok, nil
}

// OpenFrom resolves relPath starting from dir (nil means the volume
// root), descending one path component at a time. Every intermediate
// component must itself be a directory, or OpenFrom fails with
// ErrNotADirectory.
func (fs *Fs) OpenFrom(dir *Handle, relPath string) (*Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parts, rooted, err := splitPath(relPath)
	if err != nil {
		return nil, err
	}

	cur := dir
	if cur == nil || rooted {
		cur = fs.rootHandle()
	}
	if len(parts) == 0 {
		return cur, nil
	}

	for i, part := range parts {
		entry, ok, err := fs.findEntry(cur, part)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotFound
		}

		last := i == len(parts)-1
		if !last && !entry.IsDirectory() {
			return nil, ErrNotADirectory
		}
		cur = handleFromEntry(fs, entry)
	}

	return cur, nil
}

// Open resolves an absolute path from the volume root.
func (fs *Fs) Open(path string) (*Handle, error) {
	return fs.OpenFrom(nil, path)
}

// Complete lists the names of entries inside dir whose name begins
// with prefix under case-insensitive comparison, for use by a shell's
// tab-completion. Pass nil for dir to complete against the root.
func (fs *Fs) Complete(dir *Handle, prefix string) ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var names []string
	err := fs.iterate(dir, func(entry DirEntry) IterControl {
		if entry.IsVolumeLabel() || entry.IsHidden() {
			return Continue
		}
		if nameutil.HasPrefixFold(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
		return Continue
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
