package fat12

import (
	"fmt"
	"sync"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/tomos-os/fat12/blockdevice"
	"github.com/tomos-os/fat12/checkpoint"
)

// geometry holds everything derived from the boot sector at mount time
// (spec.md §3's "Volume geometry").
type geometry struct {
	bytesPerSector    uint16
	sectorsPerCluster uint8
	reservedSectors   uint16
	numFATs           uint8
	sectorsPerFAT     uint16
	rootEntryCount    uint16

	fatOffset  uint32
	rootOffset uint32
	rootSectors uint32
	dataOffset uint32

	label string
}

// Fs is a mounted, read-only FAT12 volume: immutable geometry plus the
// in-RAM FAT copy, computed once at Mount and never mutated afterward
// (spec.md §3's volume-state lifecycle). Fs is safe for concurrent use by
// multiple goroutines; a *Handle obtained from it is not.
type Fs struct {
	mu  sync.Mutex
	dev blockdevice.Device
	geo geometry
	fat []byte
	log *logrus.Logger
}

// Option configures optional behavior on Mount.
type Option func(*Fs)

// WithLogger attaches a structured logger; Mount writes one debug-level
// entry with the mounted volume's geometry to it. Discarded LFN chains
// and skipped slots are not logged. If omitted, a logger with output
// discarded is used - the core itself emits no diagnostics by default,
// per spec.md §1.
func WithLogger(log *logrus.Logger) Option {
	return func(fs *Fs) { fs.log = log }
}

// Mount reads the boot sector at LBA 0, validates it describes a FAT12
// volume with 512-byte sectors and one sector per cluster (the only
// configuration this driver supports, per spec.md §4.1), and copies the
// first FAT into RAM. All violated constraints are collected and
// returned together, wrapped in ErrBadVolume.
func Mount(dev blockdevice.Device, opts ...Option) (*Fs, error) {
	fs := &Fs{dev: dev, log: discardLogger()}
	for _, opt := range opts {
		opt(fs)
	}

	sector0, err := dev.ReadSector(0)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrBadVolume)
	}
	boot := bootSector(sector0)

	if err := validateBootSector(&boot); err != nil {
		return nil, checkpoint.Wrap(err, ErrBadVolume)
	}

	geo := geometry{
		bytesPerSector:    boot.bytesPerSector(),
		sectorsPerCluster: boot.sectorsPerCluster(),
		reservedSectors:   boot.reservedSectorCount(),
		numFATs:           boot.numFATs(),
		sectorsPerFAT:     boot.sectorsPerFAT(),
		rootEntryCount:    boot.rootEntryCount(),
	}
	geo.fatOffset = uint32(geo.reservedSectors)
	geo.rootOffset = geo.fatOffset + uint32(geo.numFATs)*uint32(geo.sectorsPerFAT)
	geo.rootSectors = (uint32(geo.rootEntryCount) * 32) / uint32(geo.bytesPerSector)
	geo.dataOffset = geo.rootOffset + geo.rootSectors
	geo.label = nameutilTrim(boot.volumeLabel())
	fs.geo = geo

	fatBytes := make([]byte, int(geo.sectorsPerFAT)*int(blockdevice.SectorSize))
	for i := uint16(0); i < geo.sectorsPerFAT; i++ {
		sector, err := dev.ReadSector(geo.fatOffset + uint32(i))
		if err != nil {
			return nil, checkpoint.Wrap(err, ErrBadVolume)
		}
		copy(fatBytes[int(i)*blockdevice.SectorSize:], sector[:])
	}
	fs.fat = fatBytes

	fs.log.WithFields(logrus.Fields{
		"label":          fs.geo.label,
		"sectors_per_fat": fs.geo.sectorsPerFAT,
		"root_sectors":   fs.geo.rootSectors,
		"data_offset":    fs.geo.dataOffset,
	}).Debug("fat12: mounted volume")

	return fs, nil
}

// validateBootSector checks every geometry constraint spec.md §4.1
// requires and aggregates every violation with go-multierror, so a
// caller sees every problem with an unsupported or corrupt image in one
// pass instead of fixing issues one failed Mount at a time.
func validateBootSector(boot *bootSector) error {
	var errs *multierror.Error

	if !boot.jumpValid() {
		errs = multierror.Append(errs, fmt.Errorf("no valid jump instruction at offset 0"))
	}
	if boot.bytesPerSector() != blockdevice.SectorSize {
		errs = multierror.Append(errs, fmt.Errorf("unsupported bytes-per-sector %d, want %d", boot.bytesPerSector(), blockdevice.SectorSize))
	}
	if boot.sectorsPerCluster() != 1 {
		errs = multierror.Append(errs, fmt.Errorf("unsupported sectors-per-cluster %d, want 1", boot.sectorsPerCluster()))
	}
	if boot.reservedSectorCount() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("reserved sector count must not be zero"))
	}
	if boot.numFATs() < 1 {
		errs = multierror.Append(errs, fmt.Errorf("FAT count must be at least 1"))
	}
	if boot.sectorsPerFAT() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("sectors-per-FAT must not be zero"))
	}
	if boot.bytesPerSector() != 0 && (boot.rootEntryCount()*32)%boot.bytesPerSector() != 0 {
		errs = multierror.Append(errs, fmt.Errorf("root entry count %d does not divide evenly into sectors", boot.rootEntryCount()))
	}
	if !boot.signatureValid() {
		errs = multierror.Append(errs, fmt.Errorf("missing 0x55AA signature at offset 510"))
	}

	if errs != nil {
		return errs.ErrorOrNil()
	}
	return nil
}

// Label returns the volume label from the boot sector's extended BPB,
// with trailing spaces trimmed.
func (fs *Fs) Label() string { return fs.geo.label }

// RawSector reads a single sector from the underlying block device
// without interpreting it, for low-level inspection tools such as a
// shell's readdisk command - the Go equivalent of the original
// firmware's Command_Disk.
func (fs *Fs) RawSector(lba uint32) ([blockdevice.SectorSize]byte, error) {
	return fs.dev.ReadSector(lba)
}

func nameutilTrim(label [11]byte) string {
	end := len(label)
	for end > 0 && label[end-1] == ' ' {
		end--
	}
	return string(label[:end])
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(discardWriter{})
	return log
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
