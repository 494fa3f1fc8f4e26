package memory

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/pkg/errors"
)

var _ storage.Folder = &Folder{}

type Folder struct {
	path    string
	Storage *KVS
}

func NewFolder(path string, storage *KVS) *Folder {
	return &Folder{path, storage}
}

func (folder *Folder) Exists(objectRelativePath string) (bool, error) {
	_, exists := folder.Storage.Load(path.Join(folder.path, objectRelativePath))
	return exists, nil
}

func (folder *Folder) GetPath() string {
	return folder.path
}

func (folder *Folder) ListFolder() (objects []storage.Object, subFolders []storage.Folder, err error) {
	subFolderNames := map[string]bool{}
	folder.Storage.Range(func(key string, value TimeStampedData) bool {
		if !strings.HasPrefix(key, folder.path) {
			return true
		}
		relativePath := strings.TrimPrefix(key, folder.path)
		if !strings.Contains(relativePath, "/") {
			objects = append(objects, storage.NewLocalObject(relativePath, value.Timestamp, int64(len(value.Data))))
		} else {
			subFolderNames[strings.Split(relativePath, "/")[0]] = true
		}
		return true
	})
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].GetName() < objects[j].GetName()
	})

	names := make([]string, 0, len(subFolderNames))
	for name := range subFolderNames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		subFolders = append(subFolders, NewFolder(path.Join(folder.path, name)+"/", folder.Storage))
	}
	return
}

func (folder *Folder) DeleteObjects(objectRelativePaths []string) error {
	for _, objectName := range objectRelativePaths {
		folder.Storage.Delete(path.Join(folder.path, objectName))
	}
	return nil
}

func (folder *Folder) GetSubFolder(subFolderRelativePath string) storage.Folder {
	return NewFolder(path.Join(folder.path, subFolderRelativePath)+"/", folder.Storage)
}

func (folder *Folder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	objectAbsPath := path.Join(folder.path, objectRelativePath)
	object, exists := folder.Storage.Load(objectAbsPath)
	if !exists {
		return nil, storage.NewObjectNotFoundError(objectAbsPath)
	}
	return io.NopCloser(bytes.NewReader(object.Data)), nil
}

func (folder *Folder) PutObject(name string, content io.Reader) error {
	data, err := io.ReadAll(content)
	objectPath := path.Join(folder.path, name)
	if err != nil {
		return errors.Wrapf(err, "failed to put '%s' in memory storage", objectPath)
	}
	folder.Storage.Store(objectPath, data)
	return nil
}

func (folder *Folder) PutObjectWithContext(ctx context.Context, name string, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return folder.PutObject(name, content)
}
