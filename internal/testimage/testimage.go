// Package testimage builds small, entirely synthetic FAT12 volumes in
// memory for use by the core package's tests, in place of shipping
// binary .img fixtures - the same role dargueta-disko's internal
// testing.LoadDiskImage helper plays for its own test suite, just
// built from scratch instead of decompressed from a fixture file.
package testimage

import (
	"encoding/binary"
	"time"

	"github.com/xaionaro-go/bytesextra"

	"github.com/tomos-os/fat12/blockdevice"
)

const (
	SectorSize      = blockdevice.SectorSize
	ReservedSectors = 1
	FATCount        = 2
	SectorsPerFAT   = 1
	RootEntryCount  = 16
	RootDirSectors  = (RootEntryCount * 32) / SectorSize
)

// Builder assembles a FAT12 image sector by sector: a boot sector, two
// identical FAT copies, a fixed-size root directory, and a data region
// addressed by cluster number starting at 2.
type Builder struct {
	sectors [][SectorSize]byte
	fat     []byte
	root    []byte
	label   string
}

// New starts an empty builder; clusters are allocated on demand as
// files and directories are added.
func New() *Builder {
	b := &Builder{
		fat:   make([]byte, SectorsPerFAT*SectorSize),
		root:  make([]byte, 0, RootDirSectors*SectorSize),
		label: "TESTVOL",
	}
	b.setFAT12(0, 0xFF8) // media descriptor + reserved entry, EOC-marked
	b.setFAT12(1, 0xFFF)
	return b
}

// totalSectors returns the image's overall sector count.
func (b *Builder) totalSectors() uint32 {
	dataOffset := uint32(ReservedSectors + FATCount*SectorsPerFAT + RootDirSectors)
	return dataOffset + uint32(len(b.sectors))
}

// bootSectorBytes renders the BIOS Parameter Block.
func (b *Builder) bootSectorBytes() [SectorSize]byte {
	var s [SectorSize]byte
	s[0] = 0xEB
	s[1] = 0x3C
	s[2] = 0x90
	binary.LittleEndian.PutUint16(s[11:13], SectorSize)
	s[13] = 1 // sectors per cluster
	binary.LittleEndian.PutUint16(s[14:16], ReservedSectors)
	s[16] = FATCount
	binary.LittleEndian.PutUint16(s[17:19], RootEntryCount)
	binary.LittleEndian.PutUint16(s[19:21], uint16(b.totalSectors()))
	s[21] = 0xF0
	binary.LittleEndian.PutUint16(s[22:24], SectorsPerFAT)
	copy(s[43:54], padName(b.label, 11))
	s[510] = 0x55
	s[511] = 0xAA
	return s
}

// setFAT12 writes a single 12-bit FAT entry, using the same packed
// layout nextCluster in the core package decodes.
func (b *Builder) setFAT12(cluster uint16, value uint16) {
	idx := cluster + cluster/2
	for int(idx)+1 >= len(b.fat) {
		b.fat = append(b.fat, 0, 0)
	}
	if cluster%2 == 0 {
		b.fat[idx] = byte(value)
		b.fat[idx+1] = (b.fat[idx+1] & 0xF0) | byte(value>>8)
	} else {
		b.fat[idx] = (b.fat[idx] & 0x0F) | byte(value<<4)
		b.fat[idx+1] = byte(value >> 4)
	}
}

// AddFile writes a root-directory entry named name containing data,
// allocating however many clusters it needs and chaining them in the
// FAT. Returns the first cluster number allocated.
func (b *Builder) AddFile(name string, data []byte, attr byte, at time.Time) uint16 {
	clusters := chainFor(len(data), SectorSize)
	first := b.allocate(clusters)
	b.writeData(first, data)
	b.appendShortEntry(name, attr, first, uint32(len(data)), at)
	return first
}

// AddDirectory writes a root-directory entry named name that is a
// subdirectory occupying one cluster, and returns a DirBuilder for it:
// children are added with the DirBuilder's AddFile, and Done writes
// them into the directory's cluster.
func (b *Builder) AddDirectory(name string, at time.Time) *DirBuilder {
	first := b.allocate(1)
	b.appendShortEntry(name, 0x10, first, 0, at)
	return &DirBuilder{parent: b, cluster: first, data: make([]byte, 0, SectorSize)}
}

// DirBuilder accumulates entries for a subdirectory's single cluster.
type DirBuilder struct {
	parent  *Builder
	cluster uint16
	data    []byte
}

// AddFile writes a file entry into this subdirectory.
func (d *DirBuilder) AddFile(name string, data []byte, attr byte, at time.Time) uint16 {
	clusters := chainFor(len(data), SectorSize)
	first := d.parent.allocate(clusters)
	d.parent.writeData(first, data)
	d.data = append(d.data, shortEntryBytes(name, attr, first, uint32(len(data)), at)...)
	return first
}

// Done writes this subdirectory's accumulated entries into its
// cluster.
func (d *DirBuilder) Done() {
	d.parent.writeDataCluster(d.cluster, d.data)
}

// chainFor returns how many clusters are needed to hold size bytes.
func chainFor(size, clusterBytes int) int {
	if size == 0 {
		return 1
	}
	return (size + clusterBytes - 1) / clusterBytes
}

// allocate reserves count contiguous clusters, chains them in the
// FAT, and grows the data region as needed.
func (b *Builder) allocate(count int) uint16 {
	first := uint16(2 + len(b.sectors))
	for i := 0; i < count; i++ {
		var sector [SectorSize]byte
		b.sectors = append(b.sectors, sector)
		cluster := first + uint16(i)
		if i == count-1 {
			b.setFAT12(cluster, 0xFFF)
		} else {
			b.setFAT12(cluster, cluster+1)
		}
	}
	return first
}

func (b *Builder) writeData(first uint16, data []byte) {
	for off := 0; off < len(data) || off == 0; off += SectorSize {
		end := off + SectorSize
		if end > len(data) {
			end = len(data)
		}
		idx := int(first-2) + off/SectorSize
		copy(b.sectors[idx][:], data[off:end])
		if end == len(data) {
			break
		}
	}
}

func (b *Builder) writeDataCluster(cluster uint16, data []byte) {
	idx := int(cluster - 2)
	copy(b.sectors[idx][:], data)
}

func (b *Builder) appendShortEntry(name string, attr byte, first uint16, size uint32, at time.Time) {
	b.root = append(b.root, shortEntryBytes(name, attr, first, size, at)...)
}

// shortEntryBytes renders a single 32-byte 8.3 directory slot. name
// must already be a valid 8.3 name such as "README.TXT" or "SUBDIR"
// (directories get no extension).
func shortEntryBytes(name string, attr byte, first uint16, size uint32, at time.Time) []byte {
	var e [32]byte
	base, ext := splitShortName(name)
	copy(e[0:8], padName(base, 8))
	copy(e[8:11], padName(ext, 3))
	e[11] = attr
	packDate := packDOSDate(at)
	packTime := packDOSTime(at)
	binary.LittleEndian.PutUint16(e[14:16], packTime)
	binary.LittleEndian.PutUint16(e[16:18], packDate)
	binary.LittleEndian.PutUint16(e[22:24], packTime)
	binary.LittleEndian.PutUint16(e[24:26], packDate)
	binary.LittleEndian.PutUint16(e[26:28], first)
	binary.LittleEndian.PutUint32(e[28:32], size)
	return e[:]
}

func splitShortName(name string) (base, ext string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

func padName(s string, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	copy(out, s)
	if len(s) > n {
		copy(out, s[:n])
	}
	return out
}

func packDOSDate(t time.Time) uint16 {
	if t.IsZero() {
		return 0
	}
	year := t.Year() - 1980
	return uint16(year<<9) | uint16(int(t.Month())<<5) | uint16(t.Day())
}

func packDOSTime(t time.Time) uint16 {
	if t.IsZero() {
		return 0
	}
	return uint16(t.Hour()<<11) | uint16(t.Minute()<<5) | uint16(t.Second()/2)
}

// Build renders the full image and wraps it as a blockdevice.Device
// backed by an in-memory bytesextra stream, ready to pass to Mount.
func (b *Builder) Build() blockdevice.Device {
	image := make([]byte, 0, int(b.totalSectors())*SectorSize)

	boot := b.bootSectorBytes()
	image = append(image, boot[:]...)

	for i := 0; i < FATCount; i++ {
		fat := make([]byte, SectorsPerFAT*SectorSize)
		copy(fat, b.fat)
		image = append(image, fat...)
	}

	root := make([]byte, RootDirSectors*SectorSize)
	copy(root, b.root)
	image = append(image, root...)

	for _, sector := range b.sectors {
		image = append(image, sector[:]...)
	}
	for len(image) < int(b.totalSectors())*SectorSize {
		image = append(image, 0)
	}

	stream := bytesextra.NewReadWriteSeeker(image)
	return blockdevice.NewFloppy(stream)
}
