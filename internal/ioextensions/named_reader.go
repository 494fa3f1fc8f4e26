package ioextensions

import "io"

// NamedReader is a reader that knows the path it was opened from.
type NamedReader interface {
	io.Reader
	Name() string
}

type NamedReaderImpl struct {
	io.Reader
	name string
}

func (reader *NamedReaderImpl) Name() string {
	return reader.name
}

func NewNamedReaderImpl(reader io.Reader, name string) *NamedReaderImpl {
	return &NamedReaderImpl{reader, name}
}
