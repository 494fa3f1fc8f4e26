package sh

import (
	"bufio"
	"context"
	"io"
	"os"
	"path"

	"github.com/datapipe/xzreader/internal/contextio"
	"github.com/datapipe/xzreader/internal/ioextensions"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/wal-g/tracelog"
)

const defaultBufferSize = 1 << 20

func NewFolderError(err error, format string, args ...interface{}) storage.Error {
	return storage.NewError(err, "SSH", format, args...)
}

type Folder struct {
	client RemoteFS
	path   string
}

func NewFolder(client RemoteFS, path string) *Folder {
	return &Folder{client: client, path: storage.AddDelimiterToPath(path)}
}

func (folder *Folder) GetPath() string {
	return folder.path
}

func (folder *Folder) ListFolder() (objects []storage.Object, subFolders []storage.Folder, err error) {
	filesInfo, err := folder.client.ReadDir(folder.path)
	if os.IsNotExist(err) {
		// No folder means no objects.
		tracelog.DebugLogger.Println("\tskipped " + folder.path + ": " + err.Error())
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, NewFolderError(err, "Fail read folder '%s'", folder.path)
	}

	for _, fileInfo := range filesInfo {
		if fileInfo.IsDir() {
			subFolders = append(subFolders, NewFolder(folder.client, folder.client.Join(folder.path, fileInfo.Name())))
			continue
		}
		objects = append(objects, storage.NewLocalObject(fileInfo.Name(), fileInfo.ModTime(), fileInfo.Size()))
	}
	return objects, subFolders, nil
}

func (folder *Folder) DeleteObjects(objectRelativePaths []string) error {
	for _, relativePath := range objectRelativePaths {
		objectPath := folder.client.Join(folder.path, relativePath)

		stat, err := folder.client.Stat(objectPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return NewFolderError(err, "Fail to get object stat '%s'", objectPath)
		}
		// Directories may be non-empty.
		if stat.IsDir() {
			continue
		}

		if err = folder.client.Remove(objectPath); err != nil {
			return NewFolderError(err, "Fail delete object '%s'", objectPath)
		}
	}
	return nil
}

func (folder *Folder) Exists(objectRelativePath string) (bool, error) {
	objectPath := folder.client.Join(folder.path, objectRelativePath)
	_, err := folder.client.Stat(objectPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, NewFolderError(err, "Fail check object existence '%s'", objectPath)
	}
	return true, nil
}

func (folder *Folder) GetSubFolder(subFolderRelativePath string) storage.Folder {
	return NewFolder(folder.client, folder.client.Join(folder.path, subFolderRelativePath))
}

func (folder *Folder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	objectPath := folder.client.Join(folder.path, objectRelativePath)
	file, err := folder.client.Open(objectPath)
	if os.IsNotExist(err) {
		return nil, storage.NewObjectNotFoundError(objectPath)
	}
	if err != nil {
		return nil, NewFolderError(err, "Fail open object '%s'", objectPath)
	}
	return &ioextensions.ReadCascadeCloser{
		Reader: bufio.NewReaderSize(file, defaultBufferSize),
		Closer: file,
	}, nil
}

func (folder *Folder) PutObject(name string, content io.Reader) error {
	return folder.PutObjectWithContext(context.Background(), name, content)
}

func (folder *Folder) PutObjectWithContext(ctx context.Context, name string, content io.Reader) error {
	absolutePath := folder.client.Join(folder.path, name)

	dirPath := path.Dir(absolutePath)
	if err := folder.client.MkdirAll(dirPath); err != nil {
		return NewFolderError(err, "Fail to create directory '%s'", dirPath)
	}

	file, err := folder.client.Create(absolutePath)
	if err != nil {
		return NewFolderError(err, "Fail to create file '%s'", absolutePath)
	}

	_, err = io.Copy(file, contextio.NewReader(ctx, content))
	if err != nil {
		if closeErr := file.Close(); closeErr != nil {
			tracelog.InfoLogger.Println("Error during closing failed upload ", closeErr)
		}
		return NewFolderError(err, "Fail write content to file '%s'", absolutePath)
	}
	if err = file.Close(); err != nil {
		return NewFolderError(err, "Fail write close file '%s'", absolutePath)
	}
	return nil
}
