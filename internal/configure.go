package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/datapipe"
	"github.com/datapipe/xzreader/internal/limiters"
	"github.com/datapipe/xzreader/pkg/storages/fs"
	"github.com/datapipe/xzreader/pkg/storages/s3"
	"github.com/datapipe/xzreader/pkg/storages/sh"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
	"golang.org/x/time/rate"
)

var (
	DiskLimiter    *rate.Limiter
	NetworkLimiter *rate.Limiter
)

type StorageAdapter struct {
	prefixName      string
	settingNames    []string
	scheme          string
	configureFolder func(string, map[string]string) (storage.Folder, error)
	remote          bool
}

var StorageAdapters = []StorageAdapter{
	{FileStoragePrefixSetting, nil, "file://", fs.ConfigureFolder, false},
	{S3StoragePrefixSetting, s3.SettingList, "s3://", s3.ConfigureFolder, true},
	{SSHStoragePrefixSetting, sh.SettingList, "ssh://", sh.ConfigureFolder, true},
}

type UnconfiguredStorageError struct {
	error
}

func NewUnconfiguredStorageError(storagePrefixVariants []string) UnconfiguredStorageError {
	return UnconfiguredStorageError{errors.Errorf("No storage is configured now, please set one of following settings: %v",
		storagePrefixVariants)}
}

func (err UnconfiguredStorageError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

func ConfigureLimiters() error {
	var err error
	if DiskLimiter, err = configureLimiter(DiskRateLimitSetting); err != nil {
		return err
	}
	NetworkLimiter, err = configureLimiter(NetworkRateLimitSetting)
	return err
}

func configureLimiter(setting string) (*rate.Limiter, error) {
	limitStr, ok := GetSetting(setting)
	if !ok || limitStr == "" {
		return nil, nil
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", setting)
	}
	return limiters.NewLimiter(limit), nil
}

// ConfigureFolder picks the first configured storage prefix and wraps the folder
// with the matching rate limiter.
func ConfigureFolder() (storage.Folder, error) {
	skippedPrefixes := make([]string, 0)
	for _, adapter := range StorageAdapters {
		prefix, ok := GetSetting(adapter.prefixName)
		if !ok || prefix == "" {
			skippedPrefixes = append(skippedPrefixes, adapter.prefixName)
			continue
		}
		folder, err := adapter.configureFolder(prefix, GetSettingsMap(adapter.settingNames))
		if err != nil {
			return nil, err
		}
		return limitFolder(folder, adapter.remote), nil
	}
	return nil, NewUnconfiguredStorageError(skippedPrefixes)
}

// ConfigureFolderFromPrefix configures a folder for an explicit prefix like
// "s3://bucket/path", "ssh://host/path" or a local path.
func ConfigureFolderFromPrefix(prefix string) (storage.Folder, error) {
	adapter := StorageAdapters[0]
	for _, candidate := range StorageAdapters[1:] {
		if strings.HasPrefix(prefix, candidate.scheme) {
			adapter = candidate
		}
	}
	folder, err := adapter.configureFolder(prefix, GetSettingsMap(adapter.settingNames))
	if err != nil {
		return nil, err
	}
	return limitFolder(folder, adapter.remote), nil
}

func limitFolder(folder storage.Folder, remote bool) storage.Folder {
	limiter := DiskLimiter
	if remote {
		limiter = NetworkLimiter
	}
	if limiter == nil {
		return folder
	}
	return NewLimitedFolder(folder, limiter)
}

func ConfigureDecompressor() (compression.Decompressor, error) {
	method, _ := GetSetting(CompressionMethodSetting)
	return compression.GetDecompressorByName(method)
}

func ConfigureCompressor() (compression.Compressor, error) {
	method, _ := GetSetting(CompressionMethodSetting)
	return compression.GetCompressorByName(method)
}

func ConfigurePipeOptions() ([]datapipe.Option, error) {
	strict, err := GetBoolSettingDefault(StrictSuffixSetting, false)
	if err != nil {
		return nil, err
	}
	return []datapipe.Option{datapipe.WithStrictSuffix(strict)}, nil
}
