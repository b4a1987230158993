package fat12

import (
	"github.com/tomos-os/fat12/blockdevice"
)

// IterControl is returned by a Visitor to tell iterate whether to keep
// walking the directory or stop early.
type IterControl int

const (
	// Continue asks iterate to visit the next entry.
	Continue IterControl = iota
	// Stop asks iterate to return immediately.
	Stop
)

// Visitor is called once per live directory slot (LFN continuation
// slots are consumed internally and never passed to a Visitor). This
// closure-based callback replaces the void*/callback-table pattern of
// the original C iterator (spec.md §9).
type Visitor func(entry DirEntry) IterControl

// iterate walks every live entry in dir, which must be a directory
// handle (or the pseudo-handle produced by Fs.rootHandle()). The root
// directory is a fixed-size flat region read directly by sector;
// any other directory is walked by following its cluster chain like a
// regular file, per spec.md §4.3.
func (fs *Fs) iterate(dir *Handle, visit Visitor) error {
	if dir != nil && !dir.root && !dir.IsDir() {
		return ErrNotADirectory
	}

	var asm lfnAssembler

	emit := func(slot entrySlot) (IterControl, error) {
		name, ok := asm.assemble(slot.shortName())
		if !ok {
			name = shortNameString(&slot)
		}
		entry := DirEntry{slot: slot, name: name}
		return visit(entry), nil
	}

	handleSlot := func(raw [32]byte) (stop bool, err error) {
		switch raw[0] {
		case 0x00:
			return true, nil
		case 0xE5:
			return false, nil
		}

		var slot entrySlot
		copy(slot[:], raw[:])

		if slot.attr()&AttrLongName == AttrLongName {
			var l lfnSlot
			copy(l[:], raw[:])
			asm.feed(l)
			return false, nil
		}
		if slot.attr()&AttrVolumeID != 0 {
			asm.reset()
			return false, nil
		}

		ctrl, err := emit(slot)
		if err != nil {
			return true, err
		}
		return ctrl == Stop, nil
	}

	if dir == nil || dir.root {
		return fs.iterateRoot(handleSlot)
	}
	return fs.iterateChain(dir.firstCluster, handleSlot)
}

// iterateRoot walks the fixed-size root directory region sector by
// sector.
func (fs *Fs) iterateRoot(handle func([32]byte) (bool, error)) error {
	for i := uint32(0); i < fs.geo.rootSectors; i++ {
		sector, err := fs.dev.ReadSector(fs.geo.rootOffset + i)
		if err != nil {
			return ErrDeviceError
		}
		for off := 0; off < blockdevice.SectorSize; off += 32 {
			var raw [32]byte
			copy(raw[:], sector[off:off+32])
			stop, err := handle(raw)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
	return nil
}

// iterateChain walks a subdirectory's cluster chain, starting at
// firstCluster, one sector (= one cluster, per the Mount-time
// validation that sectorsPerCluster == 1) at a time.
func (fs *Fs) iterateChain(firstCluster uint16, handle func([32]byte) (bool, error)) error {
	cluster := firstCluster
	for cluster >= clusterMinData {
		lba := fs.geo.dataOffset + uint32(cluster-clusterMinData)
		sector, err := fs.dev.ReadSector(lba)
		if err != nil {
			return ErrDeviceError
		}
		for off := 0; off < blockdevice.SectorSize; off += 32 {
			var raw [32]byte
			copy(raw[:], sector[off:off+32])
			stop, err := handle(raw)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}

		next, ok := nextCluster(fs.fat, cluster)
		if !ok {
			return nil
		}
		cluster = next
	}
	return nil
}

// Iterate walks dir's entries, calling visit once per live entry. Pass
// nil for dir to walk the root directory.
func (fs *Fs) Iterate(dir *Handle, visit Visitor) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.iterate(dir, visit)
}
