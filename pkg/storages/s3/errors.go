package s3

import (
	"fmt"

	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

func NewError(err error, format string, args ...interface{}) storage.Error {
	return storage.NewError(err, "S3", format, args...)
}

type SettingNotSetError struct {
	error
}

func NewSettingNotSetError(setting string) SettingNotSetError {
	return SettingNotSetError{errors.Errorf("%s setting is not set", setting)}
}

func (err SettingNotSetError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}
