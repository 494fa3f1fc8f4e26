package testtools

import (
	"bytes"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/datapipe/xzreader/pkg/storages/memory"
)

// Mock out S3 client backed by a KVS. Includes these methods:
// GetObject, HeadObject, ListObjectsV2Pages, DeleteObjects
type mockStoringS3Client struct {
	s3iface.S3API
	storage *memory.KVS
}

func NewMockStoringS3Client(storage *memory.KVS) *mockStoringS3Client {
	return &mockStoringS3Client{storage: storage}
}

func (client *mockStoringS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	value, ok := client.storage.Load(*input.Key)
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "mock GetObject: no such key", nil)
	}
	return &s3.GetObjectOutput{
		Body:          ioutil.NopCloser(bytes.NewReader(value.Data)),
		ContentLength: aws.Int64(int64(len(value.Data))),
	}, nil
}

func (client *mockStoringS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	value, ok := client.storage.Load(*input.Key)
	if !ok {
		return nil, awserr.New("NotFound", "mock HeadObject: not found", nil)
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(value.Data)))}, nil
}

// ListObjectsV2Pages returns everything in a single page.
func (client *mockStoringS3Client) ListObjectsV2Pages(input *s3.ListObjectsV2Input,
	callback func(*s3.ListObjectsV2Output, bool) bool) error {
	prefix := aws.StringValue(input.Prefix)
	delimiter := aws.StringValue(input.Delimiter)
	output := &s3.ListObjectsV2Output{}
	commonPrefixes := make(map[string]bool)

	client.storage.Range(func(key string, value memory.TimeStampedData) bool {
		if !strings.HasPrefix(key, prefix) {
			return true
		}
		rest := strings.TrimPrefix(key, prefix)
		if delimiter != "" && strings.Contains(rest, delimiter) {
			commonPrefixes[prefix+rest[:strings.Index(rest, delimiter)+len(delimiter)]] = true
			return true
		}
		output.Contents = append(output.Contents, &s3.Object{
			Key:          aws.String(key),
			LastModified: aws.Time(value.Timestamp),
			Size:         aws.Int64(int64(len(value.Data))),
		})
		return true
	})

	for commonPrefix := range commonPrefixes {
		output.CommonPrefixes = append(output.CommonPrefixes, &s3.CommonPrefix{Prefix: aws.String(commonPrefix)})
	}
	sort.Slice(output.Contents, func(i, j int) bool {
		return *output.Contents[i].Key < *output.Contents[j].Key
	})
	sort.Slice(output.CommonPrefixes, func(i, j int) bool {
		return *output.CommonPrefixes[i].Prefix < *output.CommonPrefixes[j].Prefix
	})
	callback(output, true)
	return nil
}

func (client *mockStoringS3Client) DeleteObjects(input *s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error) {
	output := &s3.DeleteObjectsOutput{}
	for _, object := range input.Delete.Objects {
		client.storage.Delete(*object.Key)
		output.Deleted = append(output.Deleted, &s3.DeletedObject{Key: object.Key})
	}
	return output, nil
}
