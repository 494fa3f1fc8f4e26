package zstd

import (
	"io"

	"github.com/datapipe/xzreader/internal/compression/computils"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader) (io.ReadCloser, error) {
	zstdReader, err := zstd.NewReader(computils.NewUntilEOFReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "DecompressZstd: failed to open zstd stream")
	}
	return zstdReader.IOReadCloser(), nil
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}
