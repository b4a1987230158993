package fat12_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomos-os/fat12"
	"github.com/tomos-os/fat12/internal/testimage"
)

func buildNestedVolume(t *testing.T) *fat12.Fs {
	t.Helper()
	b := testimage.New()
	at := time.Now()
	b.AddFile("ROOT.TXT", []byte("root"), 0x20, at)
	sub := b.AddDirectory("DOCS", at)
	sub.AddFile("NOTES.TXT", []byte("notes"), 0x20, at)
	sub.Done()

	vol, err := fat12.Mount(b.Build())
	require.NoError(t, err)
	return vol
}

func TestOpen_RootFile(t *testing.T) {
	vol := buildNestedVolume(t)

	h, err := vol.Open("root.txt")
	require.NoError(t, err, "path resolution must be case-insensitive")
	assert.False(t, h.IsDir())
	assert.Equal(t, uint32(len("root")), h.Size())
}

func TestOpen_NestedFile(t *testing.T) {
	vol := buildNestedVolume(t)

	h, err := vol.Open(`\DOCS\NOTES.TXT`)
	require.NoError(t, err)
	assert.False(t, h.IsDir())
}

func TestOpen_MissingPathComponent(t *testing.T) {
	vol := buildNestedVolume(t)

	_, err := vol.Open(`DOCS\MISSING.TXT`)
	assert.ErrorIs(t, err, fat12.ErrNotFound)
}

func TestOpen_DescendingThroughAFileFails(t *testing.T) {
	vol := buildNestedVolume(t)

	_, err := vol.Open(`ROOT.TXT\NOTES.TXT`)
	assert.ErrorIs(t, err, fat12.ErrNotADirectory)
}

func TestOpen_EmptyPathIsInvalid(t *testing.T) {
	vol := buildNestedVolume(t)

	_, err := vol.Open("")
	assert.ErrorIs(t, err, fat12.ErrInvalidPath)
}

func TestOpen_BareSeparatorIsRoot(t *testing.T) {
	vol := buildNestedVolume(t)

	h, err := vol.Open(`\`)
	require.NoError(t, err)
	assert.True(t, h.IsDir())
}

func TestOpenFrom_RootedPathIgnoresStartingDirectory(t *testing.T) {
	vol := buildNestedVolume(t)

	docs, err := vol.Open("DOCS")
	require.NoError(t, err)

	h, err := vol.OpenFrom(docs, `\ROOT.TXT`)
	require.NoError(t, err)
	assert.Equal(t, "ROOT.TXT", h.Name())
}

func TestOpenFrom_RelativeToADirectoryHandle(t *testing.T) {
	vol := buildNestedVolume(t)

	docs, err := vol.Open("DOCS")
	require.NoError(t, err)

	notes, err := vol.OpenFrom(docs, "NOTES.TXT")
	require.NoError(t, err)
	assert.Equal(t, "NOTES.TXT", notes.Name())
}

func TestComplete_PrefixMatchIsCaseInsensitive(t *testing.T) {
	vol := buildNestedVolume(t)

	names, err := vol.Complete(nil, "ro")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROOT.TXT"}, names)
}
