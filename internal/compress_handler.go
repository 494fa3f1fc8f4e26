package internal

import (
	"context"
	"io"

	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/datapipe/xzreader/utility"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

// HandleCompress writes every object of src into dst compressed, with the
// compressor's extension appended to its name.
func HandleCompress(ctx context.Context, src, dst storage.Folder, compressor compression.Compressor) (int, error) {
	objects, err := storage.ListFolderRecursively(src)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to list folder '%s'", src.GetPath())
	}

	for i, object := range objects {
		name := object.GetName() + "." + compressor.FileExtension()
		if err = compressObject(ctx, src, dst, object.GetName(), name, compressor); err != nil {
			return i, err
		}
		tracelog.DebugLogger.Printf("Compressed %s into %s\n", object.GetName(), name)
	}
	tracelog.InfoLogger.Printf("Compressed %d objects from %s\n", len(objects), src.GetPath())
	return len(objects), nil
}

func compressObject(ctx context.Context, src, dst storage.Folder, srcName, dstName string,
	compressor compression.Compressor) error {
	reader, err := src.ReadObject(srcName)
	if err != nil {
		return err
	}
	defer utility.LoggedClose(reader, "failed to close "+srcName)

	pipeReader, pipeWriter := io.Pipe()
	done := make(chan utility.Empty)
	go func() {
		defer close(done)
		writer := compressor.NewWriter(pipeWriter)
		_, err := utility.FastCopy(writer, reader)
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		_ = pipeWriter.CloseWithError(err)
	}()

	err = dst.PutObjectWithContext(ctx, dstName, pipeReader)
	// Unblocks the compressing goroutine if the upload stopped early.
	_ = pipeReader.CloseWithError(err)
	// reader stays open until the goroutine is done with it.
	<-done
	if err != nil {
		return errors.Wrapf(err, "failed to compress '%s'", srcName)
	}
	return nil
}
