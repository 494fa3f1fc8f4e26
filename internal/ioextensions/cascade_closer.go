package ioextensions

import (
	"io"

	"github.com/pkg/errors"
)

// ReadCascadeCloser composes io.ReadCloser from two parts
type ReadCascadeCloser struct {
	io.Reader
	io.Closer
}

// CascadeReadCloser closes the main reader first and then the underlying one.
// Both are always closed; the first error wins.
type CascadeReadCloser struct {
	io.ReadCloser
	Underlying io.Closer
}

func (cascadeCloser *CascadeReadCloser) Close() error {
	err := cascadeCloser.ReadCloser.Close()
	underlyingErr := cascadeCloser.Underlying.Close()
	if err != nil {
		return errors.Wrap(err, "Close: failed to close main reader")
	}
	if underlyingErr != nil {
		return errors.Wrap(underlyingErr, "Close: failed to close underlying reader")
	}
	return nil
}
