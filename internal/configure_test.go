package internal_test

import (
	"strings"
	"testing"

	"github.com/datapipe/xzreader/internal"
	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/compression/zstd"
	"github.com/datapipe/xzreader/pkg/storages/fs"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	viper.Reset()
	internal.SetDefaultValues(viper.GetViper())
	internal.DiskLimiter = nil
	internal.NetworkLimiter = nil
	t.Cleanup(func() {
		viper.Reset()
		internal.DiskLimiter = nil
		internal.NetworkLimiter = nil
	})
}

func TestConfigureDecompressor_Default(t *testing.T) {
	resetConfig(t)
	decompressor, err := internal.ConfigureDecompressor()
	require.NoError(t, err)
	assert.Equal(t, "xz", decompressor.FileExtension())
}

func TestConfigureDecompressor_ByName(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.CompressionMethodSetting, "ZSTD")
	decompressor, err := internal.ConfigureDecompressor()
	require.NoError(t, err)
	assert.Equal(t, zstd.FileExtension, decompressor.FileExtension())
}

func TestConfigureDecompressor_Unknown(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.CompressionMethodSetting, "rar")
	_, err := internal.ConfigureDecompressor()
	assert.IsType(t, compression.UnknownCompressionMethodError{}, err)
}

func TestConfigureCompressor(t *testing.T) {
	resetConfig(t)
	compressor, err := internal.ConfigureCompressor()
	require.NoError(t, err)
	assert.Equal(t, "xz", compressor.FileExtension())
}

func TestConfigurePipeOptions_InvalidBool(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.StrictSuffixSetting, "maybe")
	_, err := internal.ConfigurePipeOptions()
	assert.Error(t, err)
}

func TestConfigurePipeOptions(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.StrictSuffixSetting, "true")
	opts, err := internal.ConfigurePipeOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestConfigureLimiters(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.DiskRateLimitSetting, "1024")
	require.NoError(t, internal.ConfigureLimiters())
	require.NotNil(t, internal.DiskLimiter)
	assert.Nil(t, internal.NetworkLimiter)
	assert.Equal(t, float64(1024), float64(internal.DiskLimiter.Limit()))
}

func TestConfigureLimiters_Invalid(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.NetworkRateLimitSetting, "fast")
	assert.Error(t, internal.ConfigureLimiters())
}

func TestConfigureFolder_Unconfigured(t *testing.T) {
	resetConfig(t)
	_, err := internal.ConfigureFolder()
	assert.IsType(t, internal.UnconfiguredStorageError{}, err)
	assert.True(t, strings.Contains(err.Error(), internal.S3StoragePrefixSetting))
}

func TestConfigureFolder_FileStorage(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.FileStoragePrefixSetting, t.TempDir())
	folder, err := internal.ConfigureFolder()
	require.NoError(t, err)
	assert.IsType(t, &fs.Folder{}, folder)
}

func TestConfigureFolder_LimitedFileStorage(t *testing.T) {
	resetConfig(t)
	viper.Set(internal.FileStoragePrefixSetting, t.TempDir())
	viper.Set(internal.DiskRateLimitSetting, "1048576")
	require.NoError(t, internal.ConfigureLimiters())

	folder, err := internal.ConfigureFolder()
	require.NoError(t, err)
	assert.IsType(t, &internal.LimitedFolder{}, folder)
}

func TestConfigureFolderFromPrefix_Local(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	folder, err := internal.ConfigureFolderFromPrefix("file://localhost" + dir)
	require.NoError(t, err)
	assert.IsType(t, &fs.Folder{}, folder)

	_, err = internal.ConfigureFolderFromPrefix(dir + "/absent")
	assert.Error(t, err)
}

func TestCheckAllowedSettings_KnowsStorageSettings(t *testing.T) {
	assert.True(t, internal.AllowedSettings["AWS_REGION"])
	assert.True(t, internal.AllowedSettings["SSH_USERNAME"])
	assert.True(t, internal.AllowedSettings[internal.MetricsFileSetting])
	assert.False(t, internal.AllowedSettings["WALG_S3_PREFIX"])
}

func TestGetBoolSettingDefault(t *testing.T) {
	resetConfig(t)
	value, err := internal.GetBoolSettingDefault("XZREADER_UNSET", true)
	require.NoError(t, err)
	assert.True(t, value)
}

func TestReadConfigFromFile(t *testing.T) {
	resetConfig(t)
	path := t.TempDir() + "/config.json"
	require.NoError(t, writeFile(path, `{"XZREADER_COMPRESSION_METHOD": "brotli"}`))

	config := viper.New()
	internal.ReadConfigFromFile(config, path)
	assert.Equal(t, "brotli", config.GetString(internal.CompressionMethodSetting))
}
