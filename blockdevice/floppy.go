package blockdevice

import (
	"fmt"
	"io"
	"sync"
)

// Floppy adapts any io.ReaderAt (an *os.File opened on a disk image, or an
// in-memory buffer wrapped by a package such as bytesextra) into a Device.
// It caches the single most recently read sector, mirroring the
// single-sector cache aligator/gofat's Fs.fetch keeps - there is never a
// reason to re-read the same sector twice in a row when decoding a
// directory chain or a cluster run.
type Floppy struct {
	mu     sync.Mutex
	reader io.ReaderAt

	cached    bool
	cachedLBA uint32
	cachedBuf [SectorSize]byte
}

// NewFloppy wraps reader as a Device.
func NewFloppy(reader io.ReaderAt) *Floppy {
	return &Floppy{reader: reader}
}

// ReadSector implements Device.
func (f *Floppy) ReadSector(lba uint32) ([SectorSize]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached && f.cachedLBA == lba {
		return f.cachedBuf, nil
	}

	var buf [SectorSize]byte
	n, err := f.reader.ReadAt(buf[:], int64(lba)*SectorSize)
	if err != nil && err != io.EOF {
		return buf, fmt.Errorf("%w: lba %d: %v", ErrShortRead, lba, err)
	}
	if n != SectorSize {
		return buf, fmt.Errorf("%w: lba %d: read %d of %d bytes", ErrShortRead, lba, n, SectorSize)
	}

	f.cached = true
	f.cachedLBA = lba
	f.cachedBuf = buf
	return buf, nil
}
