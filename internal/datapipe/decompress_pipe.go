package datapipe

import (
	"io"
	"strings"

	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/compression/xz"
	"github.com/datapipe/xzreader/internal/ioextensions"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

// UnknownLength is the declared length of a pipe that can't tell how many
// items it will produce.
const UnknownLength = -1

// WarningFunc receives the identifier of a stream that failed to open and the cause.
type WarningFunc func(name string, err error)

type Option func(pipe *DecompressPipe)

// WithLength declares the nominal number of items. Negative values mean unknown.
func WithLength(length int) Option {
	return func(pipe *DecompressPipe) {
		pipe.length = length
	}
}

func WithValidator(validator Validator) Option {
	return func(pipe *DecompressPipe) {
		pipe.validator = validator
	}
}

func WithWarningFunc(warn WarningFunc) Option {
	return func(pipe *DecompressPipe) {
		pipe.warn = warn
	}
}

// WithStrictSuffix makes the pipe remove exactly one trailing ".<extension>"
// instead of trimming every trailing character of that suffix.
func WithStrictSuffix(strict bool) Option {
	return func(pipe *DecompressPipe) {
		pipe.strictSuffix = strict
	}
}

// DecompressPipe maps a sequence of (pathname, compressed stream) pairs to a
// sequence of (pathname without extension, decompressed stream) pairs.
//
// Streams are decoded while the consumer reads them. The pipe never closes
// anything: closing a produced stream closes its decoder and the compressed
// source it was opened over.
type DecompressPipe struct {
	upstream     interface{}
	decompressor compression.Decompressor
	validator    Validator
	warn         WarningFunc
	length       int
	strictSuffix bool
}

func NewDecompressPipe(upstream interface{}, decompressor compression.Decompressor, opts ...Option) *DecompressPipe {
	pipe := &DecompressPipe{
		upstream:     upstream,
		decompressor: decompressor,
		validator:    PathnameBinaryValidator,
		length:       UnknownLength,
	}
	for _, opt := range opts {
		opt(pipe)
	}
	if pipe.warn == nil {
		pipe.warn = pipe.logWarning
	}
	if pipe.length < 0 {
		pipe.length = UnknownLength
	}
	return pipe
}

// NewXzFileReader builds a pipe that extracts xz streams.
func NewXzFileReader(upstream interface{}, opts ...Option) *DecompressPipe {
	return NewDecompressPipe(upstream, xz.Decompressor{}, opts...)
}

func (pipe *DecompressPipe) Len() (int, error) {
	if pipe.length == UnknownLength {
		return 0, NewLengthUndefinedError(pipe)
	}
	return pipe.length, nil
}

func (pipe *DecompressPipe) Iter() Iterator {
	return pipe.Traverse()
}

// Traverse starts a new pass over upstream. Upstream is not touched until the
// first item is pulled.
func (pipe *DecompressPipe) Traverse() *DecompressIterator {
	return &DecompressIterator{pipe: pipe}
}

// StripSuffix derives the name of the decompressed stream.
func (pipe *DecompressPipe) StripSuffix(name string) string {
	suffix := "." + pipe.decompressor.FileExtension()
	if pipe.strictSuffix {
		return strings.TrimSuffix(name, suffix)
	}
	return strings.TrimRight(name, suffix)
}

func (pipe *DecompressPipe) open(stream LabeledStream) (LabeledStream, error) {
	format := pipe.decompressor.FileExtension()
	decoded, err := pipe.decompressor.Decompress(stream.Stream)
	if err != nil {
		pipe.warn(stream.Name, err)
		return LabeledStream{}, NewDecodeFailureError(stream.Name, format, err)
	}
	if closer, ok := stream.Stream.(io.Closer); ok {
		decoded = &ioextensions.CascadeReadCloser{ReadCloser: decoded, Underlying: closer}
	}
	return LabeledStream{
		Name:   pipe.StripSuffix(stream.Name),
		Stream: &decodingReader{ReadCloser: decoded, name: stream.Name, format: format},
	}, nil
}

func (pipe *DecompressPipe) logWarning(name string, err error) {
	tracelog.WarningLogger.Printf("Unable to extract files from corrupted %s stream %s due to: %v, abort!",
		pipe.decompressor.FileExtension(), name, err)
}

type TraversalState int

const (
	StateIdle TraversalState = iota
	StateActive
	StateExhausted
)

func (state TraversalState) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// DecompressIterator is one traversal of a DecompressPipe. It holds no
// buffered items: each Produce pulls exactly one upstream item.
type DecompressIterator struct {
	pipe     *DecompressPipe
	upstream Iterator
	state    TraversalState
	source   LabeledStream
}

func (iterator *DecompressIterator) State() TraversalState {
	return iterator.state
}

// Source is the validated upstream item behind the last Produce call. When
// Produce failed to decode it, the caller still owns its stream.
func (iterator *DecompressIterator) Source() LabeledStream {
	return iterator.source
}

// Produce returns the next decompressed stream or io.EOF when upstream is
// drained. Any other error ends the traversal.
func (iterator *DecompressIterator) Produce() (LabeledStream, error) {
	switch iterator.state {
	case StateExhausted:
		return LabeledStream{}, io.EOF
	case StateIdle:
		upstream, err := asIterator(iterator.pipe.upstream)
		if err != nil {
			iterator.finish()
			return LabeledStream{}, err
		}
		iterator.upstream = upstream
		iterator.state = StateActive
	}

	iterator.source = LabeledStream{}
	item, ok, err := iterator.upstream.Next()
	if err != nil {
		iterator.finish()
		return LabeledStream{}, err
	}
	if !ok {
		iterator.finish()
		return LabeledStream{}, io.EOF
	}

	stream, err := iterator.pipe.validator.Validate(item)
	if err != nil {
		iterator.finish()
		if _, isTypeMismatch := err.(TypeMismatchError); !isTypeMismatch {
			err = TypeMismatchError{errors.Wrap(err, "invalid upstream item")}
		}
		return LabeledStream{}, err
	}
	iterator.source = stream

	decoded, err := iterator.pipe.open(stream)
	if err != nil {
		iterator.finish()
		return LabeledStream{}, err
	}
	return decoded, nil
}

func (iterator *DecompressIterator) Next() (interface{}, bool, error) {
	stream, err := iterator.Produce()
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return stream, true, nil
}

func (iterator *DecompressIterator) finish() {
	iterator.state = StateExhausted
	iterator.upstream = nil
}

// decodingReader reports read failures of the decoder as DecodeFailureError.
type decodingReader struct {
	io.ReadCloser
	name   string
	format string
}

func (reader *decodingReader) Read(p []byte) (n int, err error) {
	n, err = reader.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		err = NewDecodeFailureError(reader.name, reader.format, err)
	}
	return
}
