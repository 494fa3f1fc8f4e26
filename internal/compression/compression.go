package compression

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/datapipe/xzreader/internal/compression/brotli"
	"github.com/datapipe/xzreader/internal/compression/gzip"
	"github.com/datapipe/xzreader/internal/compression/lz4"
	"github.com/datapipe/xzreader/internal/compression/lzma"
	"github.com/datapipe/xzreader/internal/compression/xz"
	"github.com/datapipe/xzreader/internal/compression/zstd"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

//go:generate mockgen -destination=../../test/mocks/mock_decompressor.go -package mocks github.com/datapipe/xzreader/internal/compression Decompressor

type Compressor interface {
	NewWriter(writer io.Writer) io.WriteCloser
	FileExtension() string
}

// Decompressor opens a decoding view over src. Implementations must not read
// src to completion: bytes are decoded as the returned reader is read.
type Decompressor interface {
	Decompress(src io.Reader) (io.ReadCloser, error)
	FileExtension() string
}

var CompressingAlgorithms = []string{
	xz.AlgorithmName,
	lzma.AlgorithmName,
	zstd.AlgorithmName,
	lz4.AlgorithmName,
	brotli.AlgorithmName,
	gzip.AlgorithmName,
}

var Compressors = map[string]Compressor{
	xz.AlgorithmName:     xz.Compressor{},
	lzma.AlgorithmName:   lzma.Compressor{},
	zstd.AlgorithmName:   zstd.Compressor{},
	lz4.AlgorithmName:    lz4.Compressor{},
	brotli.AlgorithmName: brotli.Compressor{},
	gzip.AlgorithmName:   gzip.Compressor{},
}

var Decompressors = []Decompressor{
	xz.Decompressor{},
	lzma.Decompressor{},
	zstd.Decompressor{},
	lz4.Decompressor{},
	brotli.Decompressor{},
	gzip.Decompressor{},
}

var decompressorsByAlgorithm = map[string]Decompressor{
	xz.AlgorithmName:     xz.Decompressor{},
	lzma.AlgorithmName:   lzma.Decompressor{},
	zstd.AlgorithmName:   zstd.Decompressor{},
	lz4.AlgorithmName:    lz4.Decompressor{},
	brotli.AlgorithmName: brotli.Decompressor{},
	gzip.AlgorithmName:   gzip.Decompressor{},
}

type UnknownCompressionMethodError struct {
	error
}

func NewUnknownCompressionMethodError(method string) UnknownCompressionMethodError {
	return UnknownCompressionMethodError{
		errors.Errorf("unknown compression method: '%s', expected one of: [%s]",
			method, strings.Join(AlgorithmNames(), " ")),
	}
}

func (err UnknownCompressionMethodError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

func GetDecompressorByCompressor(compressor Compressor) Decompressor {
	return FindDecompressor(compressor.FileExtension())
}

func FindDecompressor(fileExtension string) Decompressor {
	for _, decompressor := range Decompressors {
		if decompressor.FileExtension() == fileExtension {
			return decompressor
		}
	}
	return nil
}

// GetDecompressorByName resolves a configured compression method like "xz" or "zstd".
func GetDecompressorByName(method string) (Decompressor, error) {
	decompressor, ok := decompressorsByAlgorithm[strings.ToLower(method)]
	if !ok {
		return nil, NewUnknownCompressionMethodError(method)
	}
	return decompressor, nil
}

func GetCompressorByName(method string) (Compressor, error) {
	compressor, ok := Compressors[strings.ToLower(method)]
	if !ok {
		return nil, NewUnknownCompressionMethodError(method)
	}
	return compressor, nil
}

// AlgorithmNames lists every method a decompressor is registered for.
func AlgorithmNames() []string {
	names := make([]string, 0, len(decompressorsByAlgorithm))
	for name := range decompressorsByAlgorithm {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
