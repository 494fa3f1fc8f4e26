package lzma

import (
	"io"

	"github.com/datapipe/xzreader/internal/compression/computils"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz/lzma"
)

type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader) (io.ReadCloser, error) {
	lzReader, err := lzma.NewReader(computils.NewUntilEOFReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "DecompressLzma: failed to open lzma stream")
	}
	return io.NopCloser(lzReader), nil
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}
