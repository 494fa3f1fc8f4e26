package datapipe

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

// TypeMismatchError is returned when the upstream is not a sequence or one of
// its items is not a (pathname, binary stream) pair.
type TypeMismatchError struct {
	error
}

func NewTypeMismatchError(format string, args ...interface{}) TypeMismatchError {
	return TypeMismatchError{errors.Errorf(format, args...)}
}

func (err TypeMismatchError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// DecodeFailureError is returned when a stream can not be decompressed:
// corrupted or truncated payload, or a payload in another format.
type DecodeFailureError struct {
	error
	name string
}

func NewDecodeFailureError(name, format string, cause error) DecodeFailureError {
	return DecodeFailureError{errors.Wrapf(cause, "failed to decompress %s stream '%s'", format, name), name}
}

func (err DecodeFailureError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// Name is the identifier of the offending stream as it came from upstream.
func (err DecodeFailureError) Name() string {
	return err.name
}

func (err DecodeFailureError) Unwrap() error {
	return err.error
}

type LengthUndefinedError struct {
	error
}

func NewLengthUndefinedError(pipe interface{}) LengthUndefinedError {
	return LengthUndefinedError{errors.Errorf("%T instance doesn't have valid length", pipe)}
}

func (err LengthUndefinedError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}
