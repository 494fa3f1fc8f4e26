package xz

import (
	"io"

	"github.com/datapipe/xzreader/internal/compression/computils"
	"github.com/ulikunitz/xz"
)

const (
	AlgorithmName = "xz"
	FileExtension = "xz"
)

type Compressor struct{}

func (compressor Compressor) NewWriter(writer io.Writer) io.WriteCloser {
	xzWriter, err := xz.NewWriter(writer)
	if err != nil {
		return computils.NewFailedWriteCloser(err)
	}
	return xzWriter
}

func (compressor Compressor) FileExtension() string {
	return FileExtension
}
