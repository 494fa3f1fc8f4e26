package testtools

import (
	"bytes"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TrackingReadCloser remembers whether it was closed.
type TrackingReadCloser struct {
	io.Reader
	closed int32
}

func NewTrackingReadCloser(data []byte) *TrackingReadCloser {
	return &TrackingReadCloser{Reader: bytes.NewReader(data)}
}

func (closer *TrackingReadCloser) Close() error {
	atomic.StoreInt32(&closer.closed, 1)
	return nil
}

func (closer *TrackingReadCloser) Closed() bool {
	return atomic.LoadInt32(&closer.closed) == 1
}

//ErrorReader struct implements io.Reader interface.
//Its Read method returns zero and non-nil error on every call
type ErrorReader struct{}

func (r ErrorReader) Read(b []byte) (int, error) {
	return 0, errors.New("expected reading error")
}

//ErrorWriter struct implements io.Writer interface.
//Its Write method returns zero and non-nil error on every call
type ErrorWriter struct{}

func (w ErrorWriter) Write(b []byte) (int, error) {
	return 0, errors.New("expected writing error")
}

func AssertReaderIsEmpty(t *testing.T, reader io.Reader) {
	buf := make([]byte, 1)
	_, err := reader.Read(buf)
	assert.Equal(t, io.EOF, err)
}
