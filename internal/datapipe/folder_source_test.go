package datapipe_test

import (
	"io"
	"strings"
	"testing"

	"github.com/datapipe/xzreader/internal/datapipe"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/datapipe/xzreader/testtools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readCountingFolder struct {
	storage.Folder
	reads []string
}

func (folder *readCountingFolder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	folder.reads = append(folder.reads, objectRelativePath)
	return folder.Folder.ReadObject(objectRelativePath)
}

func TestFolderSource_Names(t *testing.T) {
	folder := testtools.CreateXzStorageFolder(t, map[string]string{"b": "2", "a": "1", "dir/c": "3"})

	names, err := datapipe.NewFolderSource(folder, datapipe.ExtensionFilter("xz")).Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xz", "b.xz", "dir/c.xz"}, names)

	names, err = datapipe.NewFolderSource(folder, nil).Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"README", "a.xz", "b.xz", "dir/c.xz"}, names)
}

func TestFolderSource_OpensObjectsWhenPulled(t *testing.T) {
	folder := &readCountingFolder{Folder: testtools.CreateXzStorageFolder(t, map[string]string{"a": "1", "b": "2"})}
	iterator := datapipe.NewXzFileReader(datapipe.NewFolderSource(folder, datapipe.ExtensionFilter("xz"))).Traverse()
	assert.Empty(t, folder.reads)

	stream, err := iterator.Produce()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xz"}, folder.reads)
	assert.Equal(t, "a", stream.Name)
	assert.Equal(t, "1", readAll(t, stream))

	names, _ := drain(t, iterator)
	assert.Equal(t, []string{"b"}, names)
	assert.Equal(t, []string{"a.xz", "b.xz"}, folder.reads)
}

func TestFolderSource_ListsOnFirstPull(t *testing.T) {
	folder := testtools.MakeDefaultInMemoryStorageFolder()
	require.NoError(t, folder.PutObject("gone.xz", strings.NewReader("x")))
	iterator := datapipe.NewFolderSource(folder, nil).Iter()
	require.NoError(t, folder.DeleteObjects([]string{"gone.xz"}))

	_, ok, err := iterator.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFolderSource_ListingIgnoresLaterChanges(t *testing.T) {
	folder := testtools.CreateXzStorageFolder(t, map[string]string{"a": "1"})
	listing, err := datapipe.NewFolderSource(folder, datapipe.ExtensionFilter("xz")).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xz"}, listing.Names)
	require.NoError(t, folder.PutObject("b.xz", strings.NewReader("x")))

	pipe := datapipe.NewXzFileReader(listing)
	for i := 0; i < 2; i++ {
		names, contents := drain(t, pipe.Traverse())
		assert.Equal(t, []string{"a"}, names)
		assert.Equal(t, []string{"1"}, contents)
	}
}
