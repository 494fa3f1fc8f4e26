package gzip

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

const (
	AlgorithmName = "gzip"
	FileExtension = "gz"
)

type Compressor struct{}

func (compressor Compressor) NewWriter(writer io.Writer) io.WriteCloser {
	return gzip.NewWriter(writer)
}

func (compressor Compressor) FileExtension() string {
	return FileExtension
}
