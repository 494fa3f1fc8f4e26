package storage

import (
	"context"
	"io"
	"path"
	"strings"
)

//go:generate mockgen -destination=../../../test/mocks/mock_folder.go -package mocks github.com/datapipe/xzreader/pkg/storages/storage Folder

type Folder interface {
	// GetPath provides a relative path from the root of the storage. It must always end with '/'.
	GetPath() string

	// ListFolder lists the folder and provides nested objects and folders. Objects must be with relative paths.
	ListFolder() (objects []Object, subFolders []Folder, err error)

	// DeleteObjects deletes objects from the storage if they exist.
	DeleteObjects(objectRelativePaths []string) error

	// Exists checks if an object exists in the folder.
	Exists(objectRelativePath string) (bool, error)

	// GetSubFolder returns a handle to the subfolder. Does not have to instantiate the subfolder in any material form.
	GetSubFolder(subFolderRelativePath string) Folder

	// ReadObject opens an object for reading. Must return ObjectNotFoundError in case the object doesn't exist.
	// The caller owns the returned reader and must close it.
	ReadObject(objectRelativePath string) (io.ReadCloser, error)

	// PutObject uploads a new object into the folder by a relative path. If an object with the same name already
	// exists, it is overwritten.
	PutObject(name string, content io.Reader) error

	// PutObjectWithContext is PutObject that can be terminated using Context.
	PutObjectWithContext(ctx context.Context, name string, content io.Reader) error
}

type RelativePathObject struct {
	Object
	ParentDir string
}

func (o RelativePathObject) GetName() string {
	return path.Join(o.ParentDir, o.Object.GetName())
}

func ListFolderRecursively(folder Folder) (relativePathObjects []Object, err error) {
	return ListFolderRecursivelyWithFilter(folder, func(string) bool { return true })
}

func ListFolderRecursivelyWithFilter(
	folder Folder,
	folderSelector func(path string) bool,
) (relativePathObjects []Object, err error) {
	queue := make([]Folder, 0)
	queue = append(queue, folder)
	for len(queue) > 0 {
		subFolder := queue[0]
		queue = queue[1:]
		objects, subFolders, err := subFolder.ListFolder()
		if err != nil {
			return nil, err
		}
		folderPrefix := strings.TrimPrefix(subFolder.GetPath(), folder.GetPath())
		relativePathObjects = append(relativePathObjects, makePathsRelative(objects, folderPrefix)...)

		queue = append(queue, filterSubfolders(folder.GetPath(), subFolders, folderSelector)...)
	}
	return relativePathObjects, nil
}

func makePathsRelative(objects []Object, folderPrefix string) []Object {
	relativePathObjects := make([]Object, len(objects))
	for i, object := range objects {
		relativePathObjects[i] = RelativePathObject{object, folderPrefix}
	}
	return relativePathObjects
}

// filterSubfolders returns subfolders matching the provided path selector
func filterSubfolders(rootFolderPath string, folders []Folder, selector func(path string) bool) []Folder {
	result := make([]Folder, 0)
	for i := range folders {
		folderPath := strings.TrimPrefix(folders[i].GetPath(), rootFolderPath)
		if selector(folderPath) {
			result = append(result, folders[i])
		}
	}
	return result
}
