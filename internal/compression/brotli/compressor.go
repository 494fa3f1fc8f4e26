package brotli

import (
	"io"

	"github.com/andybalholm/brotli"
)

const (
	AlgorithmName = "brotli"
	FileExtension = "br"
)

type Compressor struct{}

func (compressor Compressor) NewWriter(writer io.Writer) io.WriteCloser {
	return brotli.NewWriter(writer)
}

func (compressor Compressor) FileExtension() string {
	return FileExtension
}
