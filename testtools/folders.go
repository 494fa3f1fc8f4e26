package testtools

import (
	"bytes"
	"testing"

	"github.com/datapipe/xzreader/pkg/storages/memory"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/stretchr/testify/require"
)

func MakeDefaultInMemoryStorageFolder() *memory.Folder {
	return memory.NewFolder("in_memory/", memory.NewKVS())
}

// CreateXzStorageFolder puts every entry xz compressed under "<name>.xz" plus
// one plain object that listing with an extension filter must skip.
func CreateXzStorageFolder(t *testing.T, files map[string]string) storage.Folder {
	folder := MakeDefaultInMemoryStorageFolder()
	for name, content := range files {
		err := folder.PutObject(name+".xz", bytes.NewReader(CompressXz(t, []byte(content))))
		require.NoError(t, err)
	}
	require.NoError(t, folder.PutObject("README", bytes.NewBufferString("not compressed")))
	return folder
}
