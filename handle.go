package fat12

import (
	"io"

	"github.com/tomos-os/fat12/blockdevice"
)

// Kind distinguishes the three states a Handle can be in, collapsing
// what spec.md §4.7 describes as a single INVALID flag on an otherwise
// untyped handle into a proper enum a caller can switch on.
type Kind int

const (
	// Invalid marks a zero-value or closed Handle.
	Invalid Kind = iota
	// File marks a handle open on a regular file.
	File
	// Directory marks a handle open on a subdirectory.
	Directory
)

// Handle is an open file or directory reference. A Handle is
// positioned at a byte offset within its entry's data; Read advances
// that position, Seek repositions it. A Handle is not safe for
// concurrent use - this mirrors the single-cursor-per-open-file model
// spec.md §4.6/§4.7 describe, now expressed as per-Handle state instead
// of a single global file-table slot.
type Handle struct {
	fs   *Fs
	kind Kind
	root bool // true only for the pseudo-handle representing the root directory

	name         string
	firstCluster uint16
	size         uint32

	currentCluster uint16
	offset         uint32
	eof            bool
}

// Valid reports whether h refers to an open file or directory.
func (h *Handle) Valid() bool { return h != nil && h.kind != Invalid }

// IsDir reports whether h is open on a directory (or is the root
// pseudo-handle).
func (h *Handle) IsDir() bool { return h.root || h.kind == Directory }

// Name returns the entry's assembled name ("" for the root handle).
func (h *Handle) Name() string { return h.name }

// Size returns the entry's byte length as recorded in its directory
// slot. Directories report 0, matching the on-disk convention.
func (h *Handle) Size() uint32 { return h.size }

// handleFromEntry builds a Handle positioned at the start of entry's
// data.
func handleFromEntry(fs *Fs, entry DirEntry) *Handle {
	kind := File
	if entry.IsDirectory() {
		kind = Directory
	}
	return &Handle{
		fs:             fs,
		kind:           kind,
		name:           entry.Name(),
		firstCluster:   entry.FirstCluster(),
		size:           entry.Size(),
		currentCluster: entry.FirstCluster(),
	}
}

// rootHandle returns the pseudo-handle representing the volume's root
// directory.
func (fs *Fs) rootHandle() *Handle {
	return &Handle{fs: fs, kind: Directory, root: true}
}

// Read implements io.Reader. It honors the cluster-chain traversal and
// sector-boundary crossing spec.md §4.6 requires: a read that spans a
// cluster boundary follows the FAT to the next cluster transparently,
// and a read that reaches the entry's recorded size or the end of its
// chain returns io.EOF once no more bytes are available.
func (h *Handle) Read(p []byte) (int, error) {
	if !h.Valid() {
		return 0, ErrClosed
	}
	if h.IsDir() {
		return 0, ErrNotSupported
	}
	if h.eof || h.offset >= h.size {
		return 0, io.EOF
	}
	if h.currentCluster < clusterMinData {
		return 0, io.EOF
	}

	remaining := h.size - h.offset
	if uint32(len(p)) > remaining {
		p = p[:remaining]
	}
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		lba := h.fs.geo.dataOffset + uint32(h.currentCluster-clusterMinData)
		sector, err := h.fs.dev.ReadSector(lba)
		if err != nil {
			return total, ErrDeviceError
		}

		clusterBytes := blockdevice.SectorSize
		withinCluster := int(h.offset % uint32(clusterBytes))
		n := copy(p[total:], sector[withinCluster:])

		total += n
		h.offset += uint32(n)

		// Advance to the next cluster as soon as the boundary is
		// crossed, whether or not this call is finished - mirroring
		// filesystem.c's `if (remainder == 0)` advance, which runs
		// before re-checking how much is left to read. Deferring the
		// advance until the call is finished would leave currentCluster
		// pointing at the just-finished cluster, so the next Read call
		// would re-read it instead of continuing the chain.
		if withinCluster+n == clusterBytes {
			next, ok := nextCluster(h.fs.fat, h.currentCluster)
			if !ok {
				h.eof = true
				break
			}
			h.currentCluster = next
		}
	}

	if h.offset >= h.size {
		h.eof = true
	}
	return total, nil
}

// ReadAt implements io.ReaderAt by repositioning a private cursor and
// reading from there, leaving h's own Read cursor untouched.
func (h *Handle) ReadAt(p []byte, off int64) (int, error) {
	if !h.Valid() || h.IsDir() {
		return 0, ErrNotSupported
	}
	if off < 0 || off > int64(h.size) {
		return 0, io.EOF
	}

	snapshot := *h
	if _, err := snapshot.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return snapshot.Read(p)
}

// Seek implements io.Seeker. Because FAT12 offers no direct
// offset-to-cluster mapping, Seek re-derives currentCluster by walking
// the chain from firstCluster - acceptable for a read-only driver
// where seeks are infrequent relative to sequential reads.
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if !h.Valid() || h.IsDir() {
		return 0, ErrNotSupported
	}

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(h.offset) + offset
	case io.SeekEnd:
		target = int64(h.size) + offset
	default:
		return 0, ErrInvalidPath
	}
	if target < 0 {
		return 0, ErrInvalidPath
	}

	cluster := h.firstCluster
	remaining := target
	for remaining >= blockdevice.SectorSize && cluster >= clusterMinData {
		next, ok := nextCluster(h.fs.fat, cluster)
		if !ok {
			break
		}
		cluster = next
		remaining -= blockdevice.SectorSize
	}

	h.currentCluster = cluster
	h.offset = uint32(target)
	h.eof = uint32(target) >= h.size
	return target, nil
}

// Close invalidates h. Close is idempotent: closing an already-closed
// handle is a no-op.
func (h *Handle) Close() error {
	h.kind = Invalid
	h.eof = true
	return nil
}
