package fs

import (
	"os"
	"testing"

	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSFolder(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.Chmod(tmpDir, 0755)
	require.NoError(t, err)

	folder, err := ConfigureFolder(tmpDir, nil)
	require.NoError(t, err)

	storage.RunFolderTest(folder, t)
}

func TestConfigureFolder_MissingRoot(t *testing.T) {
	_, err := ConfigureFolder("/definitely/not/here", nil)
	assert.Error(t, err)
	assert.IsType(t, storage.Error{}, err)
}

func TestConfigureFolder_TrimsFileURL(t *testing.T) {
	tmpDir := t.TempDir()
	folder, err := ConfigureFolder(fileURL+tmpDir, nil)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, folder.(*Folder).rootPath)
}
