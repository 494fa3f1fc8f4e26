package xz

import (
	"io"

	"github.com/datapipe/xzreader/internal/compression/computils"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

type Decompressor struct{}

// Decompress checks the xz stream header and returns a reader that decodes
// blocks as they are read.
func (decompressor Decompressor) Decompress(src io.Reader) (io.ReadCloser, error) {
	xzReader, err := xz.NewReader(computils.NewUntilEOFReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "DecompressXz: failed to open xz stream")
	}
	return io.NopCloser(xzReader), nil
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}
