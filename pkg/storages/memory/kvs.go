package memory

import (
	"sync"
	"time"
)

type TimeStampedData struct {
	Data      []byte
	Timestamp time.Time
}

// KVS is supposed to be used for tests. It doesn't guarantee data safety!
type KVS struct {
	underlying *sync.Map
	timeNow    func() time.Time
}

func NewKVS(opts ...func(*KVS)) *KVS {
	s := &KVS{underlying: &sync.Map{}, timeNow: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func WithCustomTime(timeNow func() time.Time) func(*KVS) {
	return func(s *KVS) {
		s.timeNow = timeNow
	}
}

func (storage *KVS) Load(key string) (value TimeStampedData, exists bool) {
	valueInterface, ok := storage.underlying.Load(key)
	if !ok {
		return TimeStampedData{}, ok
	}
	return valueInterface.(TimeStampedData), ok
}

func (storage *KVS) Store(key string, data []byte) {
	storage.underlying.Store(key, TimeStampedData{Data: data, Timestamp: storage.timeNow()})
}

func (storage *KVS) Delete(key string) {
	storage.underlying.Delete(key)
}

func (storage *KVS) Range(callback func(key string, value TimeStampedData) bool) {
	storage.underlying.Range(func(iKey, iValue interface{}) bool {
		return callback(iKey.(string), iValue.(TimeStampedData))
	})
}
