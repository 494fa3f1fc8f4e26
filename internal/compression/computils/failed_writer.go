package computils

import "io"

// FailedWriteCloser reports the error that prevented a compressor from starting.
type FailedWriteCloser struct {
	Err error
}

func NewFailedWriteCloser(err error) io.WriteCloser {
	return &FailedWriteCloser{Err: err}
}

func (writer *FailedWriteCloser) Write(p []byte) (int, error) {
	return 0, writer.Err
}

func (writer *FailedWriteCloser) Close() error {
	return writer.Err
}
