package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

const (
	DefaultMaxPartSize       = 20 << 20
	DefaultUploadConcurrency = 4
	DefaultStorageClass      = "STANDARD"
)

type Uploader struct {
	uploaderAPI  s3manageriface.UploaderAPI
	storageClass string
}

func NewUploader(uploaderAPI s3manageriface.UploaderAPI, storageClass string) *Uploader {
	if storageClass == "" {
		storageClass = DefaultStorageClass
	}
	return &Uploader{uploaderAPI: uploaderAPI, storageClass: storageClass}
}

func (uploader *Uploader) upload(ctx context.Context, bucket, path string, content io.Reader) error {
	input := &s3manager.UploadInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(path),
		Body:         content,
		StorageClass: aws.String(uploader.storageClass),
	}
	_, err := uploader.uploaderAPI.UploadWithContext(ctx, input)
	if err != nil {
		return NewError(err, "failed to upload '%s' to bucket '%s'", path, bucket)
	}
	return nil
}

// CreateUploaderAPI returns an uploader with customizable concurrency
// and part size.
func CreateUploaderAPI(svc s3iface.S3API, partSize, concurrency int) s3manageriface.UploaderAPI {
	return s3manager.NewUploaderWithClient(svc, func(uploader *s3manager.Uploader) {
		uploader.PartSize = int64(partSize)
		uploader.Concurrency = concurrency
	})
}
