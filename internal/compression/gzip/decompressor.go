package gzip

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader) (io.ReadCloser, error) {
	gzReader, err := gzip.NewReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "DecompressGzip: failed to read gzip header")
	}
	return gzReader, nil
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}
