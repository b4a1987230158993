package fat12_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomos-os/fat12"
	"github.com/tomos-os/fat12/internal/testimage"
)

func TestIterate_Root_ListsFilesAndDirectories(t *testing.T) {
	b := testimage.New()
	at := time.Date(2024, time.March, 2, 10, 30, 0, 0, time.UTC)
	b.AddFile("README.TXT", []byte("hello world"), 0x20, at)
	sub := b.AddDirectory("SUBDIR", at)
	sub.AddFile("CHILD.TXT", []byte("nested"), 0x20, at)
	sub.Done()

	vol, err := fat12.Mount(b.Build())
	require.NoError(t, err)

	var names []string
	err = vol.Iterate(nil, func(entry fat12.DirEntry) fat12.IterControl {
		names = append(names, entry.Name())
		return fat12.Continue
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"README.TXT", "SUBDIR"}, names)
}

func TestIterate_StopsEarly(t *testing.T) {
	b := testimage.New()
	at := time.Now()
	b.AddFile("A.TXT", []byte("a"), 0x20, at)
	b.AddFile("B.TXT", []byte("b"), 0x20, at)
	b.AddFile("C.TXT", []byte("c"), 0x20, at)

	vol, err := fat12.Mount(b.Build())
	require.NoError(t, err)

	visited := 0
	err = vol.Iterate(nil, func(entry fat12.DirEntry) fat12.IterControl {
		visited++
		return fat12.Stop
	})
	require.NoError(t, err)
	assert.Equal(t, 1, visited)
}

func TestIterate_Subdirectory(t *testing.T) {
	b := testimage.New()
	at := time.Now()
	sub := b.AddDirectory("SUBDIR", at)
	sub.AddFile("ONE.TXT", []byte("1"), 0x20, at)
	sub.AddFile("TWO.TXT", []byte("2"), 0x20, at)
	sub.Done()

	vol, err := fat12.Mount(b.Build())
	require.NoError(t, err)

	dir, err := vol.Open("SUBDIR")
	require.NoError(t, err)
	assert.True(t, dir.IsDir())

	var names []string
	err = vol.Iterate(dir, func(entry fat12.DirEntry) fat12.IterControl {
		names = append(names, entry.Name())
		return fat12.Continue
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ONE.TXT", "TWO.TXT"}, names)
}

func TestIterate_OnAFileHandleFails(t *testing.T) {
	b := testimage.New()
	at := time.Now()
	b.AddFile("A.TXT", []byte("a"), 0x20, at)

	vol, err := fat12.Mount(b.Build())
	require.NoError(t, err)

	file, err := vol.Open("A.TXT")
	require.NoError(t, err)

	err = vol.Iterate(file, func(entry fat12.DirEntry) fat12.IterControl { return fat12.Continue })
	assert.ErrorIs(t, err, fat12.ErrNotADirectory)
}
