package testtools

import (
	"context"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/datapipe/xzreader/pkg/storages/memory"
)

// Mock out uploader client for S3 which stores uploads in a KVS.
// Includes these methods: Upload, UploadWithContext
type mockS3Uploader struct {
	s3manageriface.UploaderAPI
	storage *memory.KVS
	err     bool
}

func NewMockS3Uploader(storage *memory.KVS, err bool) *mockS3Uploader {
	return &mockS3Uploader{storage: storage, err: err}
}

func (uploader *mockS3Uploader) Upload(input *s3manager.UploadInput,
	options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return uploader.UploadWithContext(context.Background(), input, options...)
}

func (uploader *mockS3Uploader) UploadWithContext(ctx aws.Context, input *s3manager.UploadInput,
	_ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	if uploader.err {
		return nil, awserr.New("UploadFailed", "mock Upload error", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, awserr.New(request.CanceledErrorCode, "mock Upload canceled", err)
	}
	data, err := ioutil.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	uploader.storage.Store(*input.Key, data)
	return &s3manager.UploadOutput{
		Location:  *input.Bucket,
		VersionID: input.Key,
	}, nil
}
