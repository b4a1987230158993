package fat12

import "errors"

// Error kinds surfaced by this package. mount-time failures are all
// collapsed into ErrBadVolume (possibly wrapping several multierror
// members, see volume.go); open-family failures are collapsed into a
// Handle with Valid() == false, but the concrete kind is still returned
// alongside it so Go callers that want the detail can get it.
var (
	ErrBadVolume     = errors.New("fat12: bad volume")
	ErrNotFound      = errors.New("fat12: path component not found")
	ErrNotADirectory = errors.New("fat12: path component is not a directory")
	ErrDeviceError   = errors.New("fat12: block device did not return a full sector")
	ErrInvalidPath   = errors.New("fat12: invalid path")
	ErrNotSupported  = errors.New("fat12: not supported on a read-only FAT12 volume")
	ErrClosed        = errors.New("fat12: handle is closed")
)
