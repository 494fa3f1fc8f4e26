package fs

import (
	"os"
	"strings"

	"github.com/datapipe/xzreader/pkg/storages/storage"
)

const fileURL = "file://localhost"

func ConfigureFolder(prefix string, _ map[string]string) (storage.Folder, error) {
	prefix = strings.TrimPrefix(prefix, fileURL)
	if _, err := os.Stat(prefix); err != nil {
		return nil, NewError(err, "Folder not exists or is inaccessible")
	}
	return NewFolder(prefix, ""), nil
}
