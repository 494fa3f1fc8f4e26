package internal

import (
	"context"
	"io"

	"github.com/datapipe/xzreader/internal/ioextensions"
	"github.com/datapipe/xzreader/internal/limiters"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"golang.org/x/time/rate"
)

// LimitedFolder throttles reads and writes of the wrapped folder.
type LimitedFolder struct {
	storage.Folder
	limiter *rate.Limiter
}

func NewLimitedFolder(folder storage.Folder, limiter *rate.Limiter) *LimitedFolder {
	return &LimitedFolder{Folder: folder, limiter: limiter}
}

func (lf *LimitedFolder) GetSubFolder(subFolderRelativePath string) storage.Folder {
	folder := lf.Folder.GetSubFolder(subFolderRelativePath)
	return NewLimitedFolder(folder, lf.limiter)
}

func (lf *LimitedFolder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	readCloser, err := lf.Folder.ReadObject(objectRelativePath)
	if err != nil {
		return nil, err
	}
	return &ioextensions.ReadCascadeCloser{
		Reader: limiters.NewReader(context.Background(), readCloser, lf.limiter),
		Closer: readCloser,
	}, nil
}

func (lf *LimitedFolder) PutObject(name string, content io.Reader) error {
	return lf.PutObjectWithContext(context.Background(), name, content)
}

func (lf *LimitedFolder) PutObjectWithContext(ctx context.Context, name string, content io.Reader) error {
	limitedReader := limiters.NewReader(ctx, content, lf.limiter)
	return lf.Folder.PutObjectWithContext(ctx, name, limitedReader)
}
