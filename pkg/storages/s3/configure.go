package s3

import (
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/pkg/errors"
)

const (
	EndpointSetting          = "AWS_ENDPOINT"
	RegionSetting            = "AWS_REGION"
	ForcePathStyleSetting    = "AWS_S3_FORCE_PATH_STYLE"
	AccessKeyIDSetting       = "AWS_ACCESS_KEY_ID"
	SecretAccessKeySetting   = "AWS_SECRET_ACCESS_KEY"
	SessionTokenSetting      = "AWS_SESSION_TOKEN"
	StorageClassSetting      = "S3_STORAGE_CLASS"
	UploadConcurrencySetting = "S3_UPLOAD_CONCURRENCY"
	MaxPartSizeSetting       = "S3_MAX_PART_SIZE"
	MaxRetriesSetting        = "S3_MAX_RETRIES"

	MaxRetriesDefault = 15
	// S3 compatible services like Minio or Ceph accept any region.
	defaultRegion = "us-east-1"
)

var SettingList = []string{
	EndpointSetting,
	RegionSetting,
	ForcePathStyleSetting,
	AccessKeyIDSetting,
	SecretAccessKeySetting,
	SessionTokenSetting,
	StorageClassSetting,
	UploadConcurrencySetting,
	MaxPartSizeSetting,
	MaxRetriesSetting,
}

// ConfigureFolder builds a folder for prefixes like "s3://bucket/path".
func ConfigureFolder(prefix string, settings map[string]string) (storage.Folder, error) {
	bucket, path, err := storage.ParsePrefixAsURL(prefix)
	if err != nil {
		return nil, err
	}
	sess, err := createSession(settings)
	if err != nil {
		return nil, NewError(err, "failed to create new session")
	}
	s3Client := s3.New(sess)

	uploader, err := configureUploader(s3Client, settings)
	if err != nil {
		return nil, err
	}
	return NewFolder(uploader, s3Client, bucket, path), nil
}

func configureUploader(s3Client *s3.S3, settings map[string]string) (*Uploader, error) {
	concurrency, err := getIntSetting(settings, UploadConcurrencySetting, DefaultUploadConcurrency)
	if err != nil {
		return nil, err
	}
	maxPartSize, err := getIntSetting(settings, MaxPartSizeSetting, DefaultMaxPartSize)
	if err != nil {
		return nil, err
	}
	return NewUploader(CreateUploaderAPI(s3Client, maxPartSize, concurrency), settings[StorageClassSetting]), nil
}

func createSession(settings map[string]string) (*session.Session, error) {
	config, err := configWithSettings(settings)
	if err != nil {
		return nil, err
	}
	return session.NewSession(config)
}

func configWithSettings(settings map[string]string) (*aws.Config, error) {
	maxRetries, err := getIntSetting(settings, MaxRetriesSetting, MaxRetriesDefault)
	if err != nil {
		return nil, err
	}
	config := aws.NewConfig()
	config = request.WithRetryer(config, NewConnResetRetryer(client.DefaultRetryer{NumMaxRetries: maxRetries}))

	accessKeyID := settings[AccessKeyIDSetting]
	secretAccessKey := settings[SecretAccessKeySetting]
	if accessKeyID != "" && secretAccessKey != "" {
		config = config.WithCredentials(
			credentials.NewStaticCredentials(accessKeyID, secretAccessKey, settings[SessionTokenSetting]))
	}

	endpoint, hasEndpoint := settings[EndpointSetting]
	if hasEndpoint {
		config = config.WithEndpoint(endpoint)
	}

	if forcePathStyle, ok := settings[ForcePathStyleSetting]; ok {
		value, err := strconv.ParseBool(forcePathStyle)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", ForcePathStyleSetting)
		}
		config = config.WithS3ForcePathStyle(value)
	}

	region, ok := settings[RegionSetting]
	if !ok {
		if !hasEndpoint || strings.HasSuffix(endpoint, ".amazonaws.com") {
			return nil, NewSettingNotSetError(RegionSetting)
		}
		region = defaultRegion
	}
	return config.WithRegion(region), nil
}

func getIntSetting(settings map[string]string, key string, defaultValue int) (int, error) {
	raw, ok := settings[key]
	if !ok {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse %s", key)
	}
	return value, nil
}
