package internal

import (
	"os/user"
	"strconv"
	"strings"

	"github.com/datapipe/xzreader/pkg/storages/s3"
	"github.com/datapipe/xzreader/pkg/storages/sh"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/wal-g/tracelog"
)

const (
	LogLevelSetting          = "XZREADER_LOG_LEVEL"
	CompressionMethodSetting = "XZREADER_COMPRESSION_METHOD"
	StrictSuffixSetting      = "XZREADER_STRICT_SUFFIX"
	DiskRateLimitSetting     = "XZREADER_DISK_RATE_LIMIT"
	NetworkRateLimitSetting  = "XZREADER_NETWORK_RATE_LIMIT"
	MetricsFileSetting       = "XZREADER_METRICS_FILE"

	FileStoragePrefixSetting = "XZREADER_FILE_PREFIX"
	S3StoragePrefixSetting   = "XZREADER_S3_PREFIX"
	SSHStoragePrefixSetting  = "XZREADER_SSH_PREFIX"
)

var (
	CfgFile string

	defaultConfigValues = map[string]string{
		LogLevelSetting:          tracelog.NormalLogLevel,
		CompressionMethodSetting: "xz",
		StrictSuffixSetting:      "false",
	}

	AllowedSettings map[string]bool

	xzreaderSettings = []string{
		LogLevelSetting,
		CompressionMethodSetting,
		StrictSuffixSetting,
		DiskRateLimitSetting,
		NetworkRateLimitSetting,
		MetricsFileSetting,
		FileStoragePrefixSetting,
		S3StoragePrefixSetting,
		SSHStoragePrefixSetting,
	}
)

func init() {
	AllowedSettings = make(map[string]bool)
	for _, settingList := range [][]string{xzreaderSettings, s3.SettingList, sh.SettingList} {
		for _, setting := range settingList {
			AllowedSettings[setting] = true
		}
	}
}

// InitConfig reads config file and ENV variables if set.
func InitConfig() {
	globalViper := viper.GetViper()
	globalViper.AutomaticEnv()
	SetDefaultValues(globalViper)
	ReadConfigFromFile(globalViper, CfgFile)
	CheckAllowedSettings(globalViper)
}

// ReadConfigFromFile read config to the viper instance
func ReadConfigFromFile(config *viper.Viper, configFile string) {
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		usr, err := user.Current()
		tracelog.ErrorLogger.FatalOnError(err)

		// Search config in home directory with name ".xzreader" (without extension).
		config.AddConfigPath(usr.HomeDir)
		config.SetConfigName(".xzreader")
	}

	err := config.ReadInConfig()
	if err == nil {
		tracelog.DebugLogger.Println("Using config file:", config.ConfigFileUsed())
	} else if config.ConfigFileUsed() != "" {
		tracelog.WarningLogger.Printf("Failed to parse config file %s. %s.", config.ConfigFileUsed(), err)
	}
}

// SetDefaultValues set default settings to the viper instance
func SetDefaultValues(config *viper.Viper) {
	for setting, value := range defaultConfigValues {
		config.SetDefault(setting, value)
	}
}

// CheckAllowedSettings warns about every setting of the viper instance that is not allowed
func CheckAllowedSettings(config *viper.Viper) {
	for k := range config.AllSettings() {
		k = strings.ToUpper(k)
		if !AllowedSettings[k] {
			tracelog.WarningLogger.Println(k + " is unknown")
		}
	}
}

// GetSetting extract setting by key if key is set, return empty string otherwise
func GetSetting(key string) (value string, ok bool) {
	if viper.IsSet(key) {
		return viper.GetString(key), true
	}
	return "", false
}

func GetBoolSettingDefault(key string, defaultValue bool) (bool, error) {
	value, ok := GetSetting(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "failed to parse %s", key)
	}
	return result, nil
}

// GetSettingsMap collects the given keys that are set.
func GetSettingsMap(keys []string) map[string]string {
	settings := make(map[string]string)
	for _, key := range keys {
		if value, ok := GetSetting(key); ok {
			settings[key] = value
		}
	}
	return settings
}

// ConfigureLogging applies the configured log level.
func ConfigureLogging() error {
	if logLevel, ok := GetSetting(LogLevelSetting); ok {
		return tracelog.UpdateLogLevel(logLevel)
	}
	return nil
}
