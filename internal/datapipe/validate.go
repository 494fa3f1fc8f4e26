package datapipe

import (
	"io"

	"github.com/datapipe/xzreader/internal/ioextensions"
)

// Validator turns an arbitrary upstream item into a LabeledStream or
// explains why it can't.
type Validator interface {
	Validate(item interface{}) (LabeledStream, error)
}

type ValidatorFunc func(item interface{}) (LabeledStream, error)

func (f ValidatorFunc) Validate(item interface{}) (LabeledStream, error) {
	return f(item)
}

var PathnameBinaryValidator Validator = ValidatorFunc(ValidatePathnameBinaryTuple)

// ValidatePathnameBinaryTuple accepts LabeledStream values, named readers and
// two element slices of a non-empty string and an io.Reader.
func ValidatePathnameBinaryTuple(item interface{}) (LabeledStream, error) {
	switch data := item.(type) {
	case LabeledStream:
		return checkPathnameBinary(data.Name, data.Stream)
	case *LabeledStream:
		if data == nil {
			return LabeledStream{}, NewTypeMismatchError("pathname binary data should be tuple type, but got nil")
		}
		return checkPathnameBinary(data.Name, data.Stream)
	case ioextensions.NamedReader:
		return checkPathnameBinary(data.Name(), data)
	case [2]interface{}:
		return checkPathnameBinary(data[0], data[1])
	case []interface{}:
		if len(data) != 2 {
			return LabeledStream{}, NewTypeMismatchError("pathname binary tuple length should be 2, but got %d", len(data))
		}
		return checkPathnameBinary(data[0], data[1])
	}
	return LabeledStream{}, NewTypeMismatchError("pathname binary data should be tuple type, but got %T", item)
}

func checkPathnameBinary(pathname, stream interface{}) (LabeledStream, error) {
	name, ok := pathname.(string)
	if !ok {
		return LabeledStream{}, NewTypeMismatchError(
			"pathname within the tuple should have string type pathname, but got %T", pathname)
	}
	if name == "" {
		return LabeledStream{}, NewTypeMismatchError("pathname within the tuple should not be empty")
	}
	reader, ok := stream.(io.Reader)
	if !ok {
		return LabeledStream{}, NewTypeMismatchError(
			"binary stream within the tuple should have io.Reader type, but got %T", stream)
	}
	return LabeledStream{Name: name, Stream: reader}, nil
}
