package zstd

import (
	"io"

	"github.com/datapipe/xzreader/internal/compression/computils"
	"github.com/klauspost/compress/zstd"
)

const (
	AlgorithmName = "zstd"
	FileExtension = "zst"
)

type Compressor struct{}

func (compressor Compressor) NewWriter(writer io.Writer) io.WriteCloser {
	zw, err := zstd.NewWriter(writer, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return computils.NewFailedWriteCloser(err)
	}
	return zw
}

func (compressor Compressor) FileExtension() string {
	return FileExtension
}
