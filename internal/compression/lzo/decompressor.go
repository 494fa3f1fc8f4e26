//go:build lzo
// +build lzo

package lzo

import (
	"io"

	"github.com/cyberdelia/lzo"
	"github.com/pkg/errors"
)

const (
	AlgorithmName = "lzo"
	FileExtension = "lzo"
)

type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader) (io.ReadCloser, error) {
	lzor, err := lzo.NewReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "DecompressLzo: failed to read lzop header")
	}
	return lzor, nil
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}
