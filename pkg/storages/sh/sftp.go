package sh

import (
	"io"
	"os"

	"github.com/pkg/sftp"
)

// RemoteFS is the part of an SFTP session a Folder works with. Paths are
// remote, slash separated and absolute.
type RemoteFS interface {
	ReadDir(dir string) ([]os.FileInfo, error)
	Join(elem ...string) string
	Stat(path string) (os.FileInfo, error)
	Remove(path string) error
	MkdirAll(dir string) error
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
}

// sftpFS narrows *sftp.Client down to RemoteFS.
type sftpFS struct {
	client *sftp.Client
}

func newSftpFS(client *sftp.Client) sftpFS {
	return sftpFS{client: client}
}

func (fs sftpFS) ReadDir(dir string) ([]os.FileInfo, error) { return fs.client.ReadDir(dir) }
func (fs sftpFS) Join(elem ...string) string                { return fs.client.Join(elem...) }
func (fs sftpFS) Stat(path string) (os.FileInfo, error)     { return fs.client.Stat(path) }
func (fs sftpFS) Remove(path string) error                  { return fs.client.Remove(path) }
func (fs sftpFS) MkdirAll(dir string) error                 { return fs.client.MkdirAll(dir) }

// Open returns the remote file as is: compressed objects are read front to
// back, so no seeking is needed.
func (fs sftpFS) Open(path string) (io.ReadCloser, error) {
	return fs.client.Open(path)
}

func (fs sftpFS) Create(path string) (io.WriteCloser, error) {
	return fs.client.Create(path)
}
