package datapipe

import (
	"io"
	"reflect"
)

// LabeledStream is a binary stream together with the path it belongs to.
type LabeledStream struct {
	Name   string
	Stream io.Reader
}

// Close closes the stream if it can be closed.
func (stream LabeledStream) Close() error {
	if closer, ok := stream.Stream.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

//go:generate mockgen -destination=../../test/mocks/mock_iterator.go -package mocks github.com/datapipe/xzreader/internal/datapipe Iterator

// Iterator pulls items one at a time. ok is false once the sequence is exhausted.
type Iterator interface {
	Next() (item interface{}, ok bool, err error)
}

// Iterable is a sequence that can be traversed more than once.
type Iterable interface {
	Iter() Iterator
}

type IteratorFunc func() (interface{}, bool, error)

func (f IteratorFunc) Next() (interface{}, bool, error) {
	return f()
}

type SliceIterable []interface{}

func (items SliceIterable) Iter() Iterator {
	position := 0
	return IteratorFunc(func() (interface{}, bool, error) {
		if position >= len(items) {
			return nil, false, nil
		}
		item := items[position]
		position++
		return item, true, nil
	})
}

func FromStreams(streams ...LabeledStream) SliceIterable {
	items := make(SliceIterable, 0, len(streams))
	for _, stream := range streams {
		items = append(items, stream)
	}
	return items
}

// ForEach drains the iterator, stopping at the first error.
func ForEach(iterator Iterator, callback func(item interface{}) error) error {
	for {
		item, ok, err := iterator.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err = callback(item); err != nil {
			return err
		}
	}
}

func asIterator(upstream interface{}) (Iterator, error) {
	switch source := upstream.(type) {
	case Iterable:
		if isNilReference(source) {
			break
		}
		return source.Iter(), nil
	case Iterator:
		if isNilReference(source) {
			break
		}
		return source, nil
	case []LabeledStream:
		return FromStreams(source...).Iter(), nil
	case []interface{}:
		return SliceIterable(source).Iter(), nil
	}
	return nil, NewTypeMismatchError("datapipe must be Iterable type but got %T", upstream)
}

// isNilReference reports a nil pointer, func, map or chan stored in an
// interface. Nil slices are empty sequences and stay valid.
func isNilReference(value interface{}) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Chan:
		return v.IsNil()
	}
	return false
}
