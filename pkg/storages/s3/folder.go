package s3

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

const (
	NotFoundAWSErrorCode  = "NotFound"
	NoSuchKeyAWSErrorCode = "NoSuchKey"

	// S3 refuses to delete more keys per request.
	deleteBatchSize = 1000
)

type Folder struct {
	s3API    s3iface.S3API
	uploader *Uploader
	bucket   *string
	path     string
}

func NewFolder(uploader *Uploader, s3API s3iface.S3API, bucket, path string) *Folder {
	// No difference between absolute and relative paths in S3.
	path = strings.TrimPrefix(path, "/")
	return &Folder{
		uploader: uploader,
		s3API:    s3API,
		bucket:   aws.String(bucket),
		path:     storage.AddDelimiterToPath(path),
	}
}

func (folder *Folder) Exists(objectRelativePath string) (bool, error) {
	objectPath := folder.path + objectRelativePath
	_, err := folder.s3API.HeadObject(&s3.HeadObjectInput{
		Bucket: folder.bucket,
		Key:    aws.String(objectPath),
	})
	if err != nil {
		if isAwsNotExist(err) {
			return false, nil
		}
		return false, NewError(err, "failed to check s3 object '%s' existence", objectPath)
	}
	return true, nil
}

func (folder *Folder) PutObject(name string, content io.Reader) error {
	return folder.PutObjectWithContext(context.Background(), name, content)
}

func (folder *Folder) PutObjectWithContext(ctx context.Context, name string, content io.Reader) error {
	tracelog.DebugLogger.Printf("Put %v into %v\n", name, folder.path)
	return folder.uploader.upload(ctx, *folder.bucket, folder.path+name, content)
}

func (folder *Folder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	objectPath := folder.path + objectRelativePath
	object, err := folder.s3API.GetObject(&s3.GetObjectInput{
		Bucket: folder.bucket,
		Key:    aws.String(objectPath),
	})
	if err != nil {
		if isAwsNotExist(err) {
			return nil, storage.NewObjectNotFoundError(objectPath)
		}
		return nil, NewError(err, "failed to read object: '%s' from S3", objectPath)
	}
	return object.Body, nil
}

func (folder *Folder) GetSubFolder(subFolderRelativePath string) storage.Folder {
	return NewFolder(folder.uploader, folder.s3API, *folder.bucket,
		storage.JoinPath(folder.path, subFolderRelativePath)+"/")
}

func (folder *Folder) GetPath() string {
	return folder.path
}

func (folder *Folder) ListFolder() (objects []storage.Object, subFolders []storage.Folder, err error) {
	input := &s3.ListObjectsV2Input{
		Bucket:    folder.bucket,
		Prefix:    aws.String(folder.path),
		Delimiter: aws.String("/"),
	}
	err = folder.s3API.ListObjectsV2Pages(input, func(files *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, prefix := range files.CommonPrefixes {
			subFolders = append(subFolders, NewFolder(folder.uploader, folder.s3API, *folder.bucket, *prefix.Prefix))
		}
		for _, object := range files.Contents {
			// Some storages return the folder itself as a key.
			if *object.Key == folder.path {
				continue
			}
			objectRelativePath := strings.TrimPrefix(*object.Key, folder.path)
			objects = append(objects, storage.NewLocalObject(objectRelativePath,
				aws.TimeValue(object.LastModified), aws.Int64Value(object.Size)))
		}
		return true
	})
	// DigitalOcean Spaces answer NoSuchKey when listing folders which don't exist yet.
	if err != nil && !isAwsNotExist(err) {
		return nil, nil, NewError(err, "failed to list s3 folder: '%s'", folder.path)
	}
	return objects, subFolders, nil
}

func (folder *Folder) DeleteObjects(objectRelativePaths []string) error {
	for _, part := range partitionStrings(objectRelativePaths, deleteBatchSize) {
		input := &s3.DeleteObjectsInput{Bucket: folder.bucket, Delete: &s3.Delete{
			Objects: folder.partitionToObjects(part),
		}}
		_, err := folder.s3API.DeleteObjects(input)
		if err != nil {
			return NewError(err, "failed to delete s3 objects: '%v'", part)
		}
	}
	return nil
}

func (folder *Folder) partitionToObjects(keys []string) []*s3.ObjectIdentifier {
	objects := make([]*s3.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(folder.path + key)})
	}
	return objects
}

func partitionStrings(strings []string, blockSize int) [][]string {
	partition := make([][]string, 0)
	for i := 0; i < len(strings); i += blockSize {
		if i+blockSize > len(strings) {
			partition = append(partition, strings[i:])
		} else {
			partition = append(partition, strings[i:i+blockSize])
		}
	}
	return partition
}

func isAwsNotExist(err error) bool {
	if awsErr, ok := errors.Cause(err).(awserr.Error); ok {
		if awsErr.Code() == NotFoundAWSErrorCode || awsErr.Code() == NoSuchKeyAWSErrorCode {
			return true
		}
	}
	return false
}
