package fat12_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomos-os/fat12"
	"github.com/tomos-os/fat12/internal/testimage"
)

func TestMount_Label(t *testing.T) {
	dev := testimage.New().Build()

	vol, err := fat12.Mount(dev)
	require.NoError(t, err)
	assert.Equal(t, "TESTVOL", vol.Label())
}

func TestMount_RejectsBadSignature(t *testing.T) {
	dev := &corruptingDevice{inner: testimage.New().Build(), corruptSignature: true}

	_, err := fat12.Mount(dev)
	require.Error(t, err)
	assert.ErrorIs(t, err, fat12.ErrBadVolume)
}

// corruptingDevice wraps a Device and flips the boot sector's 0x55AA
// signature bytes, so Mount's validation path can be exercised without
// hand-assembling an entire malformed image.
type corruptingDevice struct {
	inner            interface {
		ReadSector(uint32) ([512]byte, error)
	}
	corruptSignature bool
}

func (d *corruptingDevice) ReadSector(lba uint32) ([512]byte, error) {
	sector, err := d.inner.ReadSector(lba)
	if err != nil {
		return sector, err
	}
	if lba == 0 && d.corruptSignature {
		sector[510] = 0
		sector[511] = 0
	}
	return sector, nil
}
